package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brogergvhs/mangasrc/internal/config"

	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultPath := filepath.Join(config.ConfigsDir(), config.DefaultLabel+".yaml")

		if _, err := os.Stat(defaultPath); err == nil {
			fmt.Println("Configuration already exists at:")
			fmt.Println("  ", defaultPath)
			fmt.Println("Use `mangasrc config reset` to recreate it.")
			return nil
		}

		fmt.Println("Default configuration:")
		config.DefaultConfig().Print()
		fmt.Println()

		ok, err := confirm(fmt.Sprintf("Create Default config at %s", defaultPath))
		if err != nil || !ok {
			fmt.Println("Aborted.")
			return err
		}

		path, err := config.InitDefaultConfig()
		if err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Println("Config created at:", path)
		fmt.Println("This config is now active (label: Default).")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
