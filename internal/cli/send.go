package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whispr-io/whisprtray/internal/action"
)

var sendCmd = &cobra.Command{
	Use:       "send [toggle|paste-last|show|show-settings|quit]",
	Short:     "Send an action to the recorder",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"toggle", "paste-last", "show", "show-settings", "quit"},
	RunE: func(cmd *cobra.Command, args []string) error {
		flag, err := action.FlagForAction(args[0])
		if err != nil {
			return err
		}

		runner := action.NewRunner()
		fmt.Printf("Sending %s to %s\n", flag, runner.Binary())
		runner.Invoke(flag)
		return nil
	},
}
