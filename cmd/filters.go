package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/providers"

	"github.com/spf13/cobra"
)

// parseFilter reads one --filter flag, "kind:id=value":
//
//	text:author=oda
//	select:status=completed
//	sort:sort=3        (append ",asc" for ascending)
//	multi:genres=action,drama,-horror
//	check:adult=1
func parseFilter(s string) (providers.FilterValue, error) {
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("filter %q: expected kind:id=value", s)
	}
	id, value, ok := strings.Cut(rest, "=")
	if !ok || id == "" {
		return nil, fmt.Errorf("filter %q: expected kind:id=value", s)
	}

	switch strings.ToLower(kind) {
	case "text":
		return providers.TextFilter{ID: id, Value: value}, nil
	case "select":
		return providers.SelectFilter{ID: id, Value: value}, nil
	case "sort":
		idx, dir, _ := strings.Cut(value, ",")
		n, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil {
			return nil, fmt.Errorf("filter %q: sort index: %w", s, err)
		}
		return providers.SortFilter{ID: id, Index: n, Ascending: strings.EqualFold(dir, "asc")}, nil
	case "multi", "multi-select":
		f := providers.MultiSelectFilter{ID: id}
		for _, v := range strings.Split(value, ",") {
			v = strings.TrimSpace(v)
			switch {
			case v == "" || v == "-":
			case strings.HasPrefix(v, "-"):
				f.Excluded = append(f.Excluded, v[1:])
			default:
				f.Included = append(f.Included, v)
			}
		}
		return f, nil
	case "check":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("filter %q: check value: %w", s, err)
		}
		return providers.CheckFilter{ID: id, Value: n}, nil
	default:
		return nil, fmt.Errorf("filter %q: unknown kind %q", s, kind)
	}
}

func parseFilters(raw []string) ([]providers.FilterValue, error) {
	out := make([]providers.FilterValue, 0, len(raw))
	for _, s := range raw {
		f, err := parseFilter(s)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the filters a source loads from its site",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		src, err := a.source()
		if err != nil {
			return err
		}
		fp, ok := src.(providers.DynamicFilterProvider)
		if !ok {
			return fmt.Errorf("%s has no dynamic filters", src.Key())
		}
		specs, err := fp.DynamicFilters(ctx)
		if err != nil {
			return err
		}
		return a.print(specs)
	}),
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}
