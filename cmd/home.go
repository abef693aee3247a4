package cmd

import (
	"context"
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/providers"

	"github.com/spf13/cobra"
)

// component tags each home component with its variant for JSON output.
type component struct {
	Title    string                       `json:"title,omitempty"`
	Subtitle string                       `json:"subtitle,omitempty"`
	Type     string                       `json:"type"`
	Value    providers.HomeComponentValue `json:"value"`
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home page layout of a source",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		src, err := a.source()
		if err != nil {
			return err
		}
		hp, ok := src.(providers.HomeProvider)
		if !ok {
			return fmt.Errorf("%s has no home page", src.Key())
		}

		layout, err := hp.Home(ctx)
		if err != nil {
			return err
		}

		out := make([]component, 0, len(layout.Components))
		for _, c := range layout.Components {
			out = append(out, component{
				Title:    c.Title,
				Subtitle: c.Subtitle,
				Type:     c.Value.ComponentType(),
				Value:    c.Value,
			})
		}
		return a.print(out)
	}),
}

func init() {
	rootCmd.AddCommand(homeCmd)
}
