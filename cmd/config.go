package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var flagYes bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the mangasrc config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := config.LoadMerged(config.Options{
			IgnoreConfig: flagIgnoreConfig,
			Debug:        flagDebug,
			Source:       flagSource,
			SitesFile:    flagSitesFile,
			LogFormat:    flagLogFormat,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Loaded config from:\n  %s\n\n", used)
		cfg.Print()
		return nil
	},
}

// confirm asks a yes/no question unless --yes was given. A declined or
// interrupted prompt returns false without error.
func confirm(label string) (bool, error) {
	if flagYes {
		return true, nil
	}

	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func init() {
	configCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "answer yes to confirmations")
	rootCmd.AddCommand(configCmd)
}
