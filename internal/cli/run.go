package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/whispr-io/whisprtray/internal/action"
	"github.com/whispr-io/whisprtray/internal/config"
	"github.com/whispr-io/whisprtray/internal/indicator"
	"github.com/whispr-io/whisprtray/internal/tray"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the tray indicator (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndicator()
	},
}

// runIndicator blocks on the system tray loop until quit.
// systray.Run must occupy the main goroutine on macOS (Cocoa
// requirement), so everything else starts from the tray's onStart.
func runIndicator() error {
	log.SetPrefix("[whisprtray] ")
	log.SetFlags(log.Ldate | log.Ltime)

	settings := config.EnsureSettings()
	runner := action.NewRunner()

	log.Printf("state dir: %s", config.StateDir())
	log.Printf("recorder binary: %s", runner.Binary())

	var ind *indicator.Indicator

	onStart := func(ui *tray.UI) {
		ind = indicator.New(settings, ui, runner)
		ind.Start()
	}

	onExit := func() {
		if ind != nil {
			ind.Stop()
		}
		log.Println("indicator stopped")
	}

	// actions must exist before the indicator does, so the tray takes
	// a thin deferred wrapper.
	lazy := &lazyActions{get: func() *indicator.Indicator { return ind }}
	tray.Run(lazy, onStart, onExit)
	return nil
}

// lazyActions defers to the real indicator once it exists. The tray
// builds its menu before onStart runs, so early clicks can arrive
// while ind is still nil.
type lazyActions struct {
	get func() *indicator.Indicator
}

func (l *lazyActions) ToggleRecording() {
	if ind := l.get(); ind != nil {
		ind.ToggleRecording()
	}
}

func (l *lazyActions) PasteLast() {
	if ind := l.get(); ind != nil {
		ind.PasteLast()
	}
}

func (l *lazyActions) ShowApp() {
	if ind := l.get(); ind != nil {
		ind.ShowApp()
	}
}

func (l *lazyActions) ShowSettings() {
	if ind := l.get(); ind != nil {
		ind.ShowSettings()
	}
}

func (l *lazyActions) CopyRecent(id string) {
	if ind := l.get(); ind != nil {
		ind.CopyRecent(id)
	}
}

func (l *lazyActions) Quit() {
	if ind := l.get(); ind != nil {
		ind.Quit()
		return
	}
	tray.Quit()
}
