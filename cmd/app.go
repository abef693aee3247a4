package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/brogergvhs/mangasrc/internal/config"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/sources"
	"github.com/brogergvhs/mangasrc/internal/ui"
	"github.com/brogergvhs/mangasrc/internal/util"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// app is what every source command needs: merged config, logger, HTTP
// client and the source registry.
type app struct {
	cfg      *config.Config
	log      *ui.Logger
	client   *http.Client
	registry *providers.Registry
	stats    *ui.Stats
	out      io.Writer
}

// extraFlags lets a command add its own config overrides.
type extraFlags func(*config.Options)

func newApp(cmd *cobra.Command, extra ...extraFlags) (*app, error) {
	opts := config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Source:       flagSource,
		SitesFile:    flagSitesFile,
		LogFormat:    flagLogFormat,
	}
	for _, fn := range extra {
		fn(&opts)
	}

	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	log := ui.NewLogger(cfg.Debug, cfg.LogFormat)
	log.Debugf("config: %s", used)

	a := &app{cfg: cfg, log: log, stats: &ui.Stats{}, out: cmd.OutOrStdout()}

	a.client, err = util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.Timeout(),
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		Requests:         &a.stats.Requests,
		DebugLogger:      log,
	})
	if err != nil {
		return nil, err
	}

	extraSites, err := sources.LoadFile(cfg.SitesFile)
	if err != nil {
		return nil, err
	}

	a.registry, err = sources.NewRegistry(sources.Options{Client: a.client, Log: log, Extra: extraSites})
	if err != nil {
		// Keep whatever sources did load.
		if a.registry == nil {
			return nil, err
		}
		log.Errorf("%v", err)
	}

	return a, nil
}

func (a *app) close() { a.log.Sync() }

// source returns the configured source, prompting for one when none is
// set and stdin is a terminal.
func (a *app) source() (providers.Source, error) {
	key := a.cfg.Source
	if key == "" {
		picked, err := a.pickSource()
		if err != nil {
			return nil, err
		}
		key = picked
	}

	src, ok := a.registry.Get(key)
	if !ok {
		return nil, fmt.Errorf("unknown source %q (see `mangasrc sources`)", key)
	}
	return src, nil
}

func (a *app) pickSource() (string, error) {
	if fi, err := os.Stdin.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return "", fmt.Errorf("no source selected: pass --source or set source in the config")
	}

	list := a.registry.List()
	items := make([]string, 0, len(list))
	for _, d := range list {
		items = append(items, d.Key+"  "+d.Name)
	}

	prompt := promptui.Select{
		Label: "Select source",
		Items: items,
		Size:  12,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}
	return list[idx].Key, nil
}

func (a *app) print(v any) error {
	b, err := util.JSON.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

// run wraps a source command: it builds the app, hands it to fn and
// flushes the logger.
func run(fn func(ctx context.Context, a *app, args []string) error, extra ...extraFlags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, extra...)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd.Context(), a, args)
	}
}
