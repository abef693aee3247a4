package cmd

import (
	"context"
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/providers"

	"github.com/spf13/cobra"
)

type resolved struct {
	Source string                   `json:"source"`
	Type   string                   `json:"type"`
	Result providers.DeepLinkResult `json:"result"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Find the source, manga, chapter or listing behind a URL",
	Long:  "Find the source, manga, chapter or listing behind a URL. With --source only that source is asked.",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		link, err := resolveLink(ctx, a, args[0])
		if err != nil {
			return err
		}
		if link == nil {
			return fmt.Errorf("no source recognises %s", args[0])
		}
		return a.print(resolved{Source: link.Source, Type: link.Result.LinkType(), Result: link.Result})
	}),
}

func resolveLink(ctx context.Context, a *app, rawURL string) (*providers.ResolvedLink, error) {
	if flagSource == "" {
		return a.registry.Resolve(ctx, rawURL)
	}

	src, err := a.source()
	if err != nil {
		return nil, err
	}
	h, ok := src.(providers.DeepLinkHandler)
	if !ok {
		return nil, fmt.Errorf("%s does not handle links", src.Key())
	}
	res, err := h.HandleDeepLink(ctx, rawURL)
	if err != nil || res == nil {
		return nil, err
	}
	return &providers.ResolvedLink{Source: src.Key(), Result: res}, nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
