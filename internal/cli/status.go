package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/whispr-io/whisprtray/internal/config"
	"github.com/whispr-io/whisprtray/internal/presenter"
	"github.com/whispr-io/whisprtray/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the recorder state the indicator would show",
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.LoadSettings()
		s := store.New(config.RecordingFile(), config.TrayFile())
		now := time.Now()

		rec := store.Fresh(s.Recording(), now, settings.Staleness())
		tray := s.Tray()
		frame, _ := presenter.Derive(rec, tray, now, settings.SuccessFlash(), settings.ErrorFlash())

		fmt.Printf("State dir: %s\n", config.StateDir())
		fmt.Printf("Visual:    %s\n", frame.Visual)
		if frame.Clock != "" {
			fmt.Printf("Elapsed:   %s\n", frame.Clock)
		}
		if rec.Recording {
			fmt.Printf("Level:     %.2f\n", rec.Level)
		}
		if tray.LastError != "" {
			fmt.Printf("Last error: %s\n", tray.LastError)
		}
		fmt.Printf("Recents:   %d\n", len(tray.Recent))
		for _, transcript := range tray.Recent {
			preview := transcript.Preview
			if preview == "" {
				preview = transcript.Text
			}
			fmt.Printf("  - %s\n", preview)
		}
	},
}
