package cmd

import (
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/config"

	"github.com/spf13/cobra"
)

var configRemoveCmd = &cobra.Command{
	Use:   "remove [label]",
	Short: "Remove a config",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			picked, err := pickConfig("Remove")
			if err != nil {
				return err
			}
			label = picked
		}

		if active, _ := config.CurrentLabel(); label == active {
			ok, err := confirm(fmt.Sprintf("Config %q is currently active. Remove it anyway", label))
			if err != nil || !ok {
				fmt.Println("Aborted.")
				return err
			}
		}

		fellBack, err := config.RemoveConfig(label)
		if err != nil {
			return err
		}

		fmt.Printf("Removed configuration %q\n", label)
		if fellBack {
			fmt.Printf("Active config is now %q\n", config.DefaultLabel)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configRemoveCmd)
}
