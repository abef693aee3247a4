package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var flagAddFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config, empty or copied from a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = strings.TrimSpace(args[0])
		} else {
			prompt := promptui.Prompt{
				Label: "Label for new config",
				Validate: func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("label cannot be empty")
					}
					return nil
				},
			}
			entered, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("cancelled")
			}
			label = strings.TrimSpace(entered)
		}

		if flagAddFrom != "" {
			if err := config.AddConfig(label, flagAddFrom); err != nil {
				return err
			}
			fmt.Printf("Created new config: %s\n", filepath.Join(config.ConfigsDir(), label+".yaml"))
			return nil
		}

		path, err := config.CreateEmptyConfig(label)
		if err != nil {
			return err
		}
		fmt.Printf("Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagAddFrom, "from", "", "copy an existing YAML file")
	configCmd.AddCommand(configAddCmd)
}
