// Package filters folds user-selected filter values into request
// parameters according to a per-site rule table.
package filters

import (
	"strings"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/route"
)

// Result is what a fold produces. When Search is set the request must go to
// the site's search endpoint with Keyword and every other field is unused.
type Result struct {
	Search  bool
	Keyword string

	// Slots hold single values for sites with positional URL segments.
	Slots map[string]string
	// Lists hold multi-valued selections.
	Lists map[string][]string
	// Query collects pass-through parameters in filter order.
	Query route.Query
}

// Slot returns the value stored under name, or def when unset.
func (r *Result) Slot(name, def string) string {
	if v, ok := r.Slots[name]; ok {
		return v
	}
	return def
}

// Rule applies one filter value. Returning done=true stops the fold.
type Rule func(f providers.FilterValue, r *Result) (done bool, err error)

type key struct {
	kind string
	id   string
}

// Mapper routes filter values by variant and id. Unknown pairs are
// rejected.
type Mapper struct {
	rules map[key]Rule
}

func NewMapper() *Mapper {
	return &Mapper{rules: map[key]Rule{}}
}

func (m *Mapper) Text(id string, rule Rule) *Mapper {
	return m.on(providers.TextFilter{}, id, rule)
}

func (m *Mapper) Sort(id string, rule Rule) *Mapper {
	return m.on(providers.SortFilter{}, id, rule)
}

func (m *Mapper) Select(id string, rule Rule) *Mapper {
	return m.on(providers.SelectFilter{}, id, rule)
}

func (m *Mapper) MultiSelect(id string, rule Rule) *Mapper {
	return m.on(providers.MultiSelectFilter{}, id, rule)
}

func (m *Mapper) on(kind providers.FilterValue, id string, rule Rule) *Mapper {
	m.rules[key{providers.FilterKind(kind), id}] = rule
	return m
}

// Fold maps query and filters into a Result. A non-blank query always wins
// and the filters are ignored. Otherwise filters apply in order until one
// redirects to search.
func (m *Mapper) Fold(query string, values []providers.FilterValue) (Result, error) {
	res := Result{Slots: map[string]string{}, Lists: map[string][]string{}}

	if q := strings.TrimSpace(query); q != "" {
		res.Search = true
		res.Keyword = q
		return res, nil
	}

	for _, f := range values {
		kind := providers.FilterKind(f)
		rule, ok := m.rules[key{kind, f.FilterID()}]
		if !ok {
			return Result{}, providers.InvalidInput(kind+" filter ID", f.FilterID())
		}

		done, err := rule(f, &res)
		if err != nil {
			return Result{}, err
		}
		if done {
			break
		}
	}

	return res, nil
}

// ToSearch redirects the request to search using the filter's text or
// selected value as the keyword.
func ToSearch() Rule {
	return func(f providers.FilterValue, r *Result) (bool, error) {
		switch v := f.(type) {
		case providers.TextFilter:
			r.Keyword = v.Value
		case providers.SelectFilter:
			r.Keyword = v.Value
		default:
			return false, providers.InvalidInput("search filter", f.FilterID())
		}
		r.Search = true
		return true, nil
	}
}

// Enum stores the code mapped from a select filter's display value into
// slot. Values missing from codes are rejected.
func Enum(slot string, codes map[string]string) Rule {
	return func(f providers.FilterValue, r *Result) (bool, error) {
		v, ok := f.(providers.SelectFilter)
		if !ok {
			return false, providers.InvalidInput("select filter", f.FilterID())
		}
		code, ok := codes[v.Value]
		if !ok {
			return false, providers.InvalidInput(v.ID+" value", v.Value)
		}
		r.Slots[slot] = code
		return false, nil
	}
}

// SortIndex stores values[index] into slot, or def when the index is out of
// range.
func SortIndex(slot string, values []string, def string) Rule {
	return func(f providers.FilterValue, r *Result) (bool, error) {
		v, ok := f.(providers.SortFilter)
		if !ok {
			return false, providers.InvalidInput("sort filter", f.FilterID())
		}
		if v.Index >= 0 && v.Index < len(values) {
			r.Slots[slot] = values[v.Index]
		} else {
			r.Slots[slot] = def
		}
		return false, nil
	}
}

// SortParam is SortIndex for sites that pass the sort as a query parameter
// named after the filter id.
func SortParam(values []string, def string) Rule {
	return func(f providers.FilterValue, r *Result) (bool, error) {
		v, ok := f.(providers.SortFilter)
		if !ok {
			return false, providers.InvalidInput("sort filter", f.FilterID())
		}
		value := def
		if v.Index >= 0 && v.Index < len(values) {
			value = values[v.Index]
		}
		r.Query.Push(v.ID, value)
		return false, nil
	}
}

// Param passes a select filter through as id=value.
func Param() Rule {
	return func(f providers.FilterValue, r *Result) (bool, error) {
		v, ok := f.(providers.SelectFilter)
		if !ok {
			return false, providers.InvalidInput("select filter", f.FilterID())
		}
		r.Query.Push(v.ID, v.Value)
		return false, nil
	}
}

// Included stores a multi-select's included values under list.
func Included(list string) Rule {
	return func(f providers.FilterValue, r *Result) (bool, error) {
		v, ok := f.(providers.MultiSelectFilter)
		if !ok {
			return false, providers.InvalidInput("multi-select filter", f.FilterID())
		}
		r.Lists[list] = v.Included
		return false, nil
	}
}

// Joined pushes included and excluded values as comma-joined parameters.
// An empty excludeParam drops exclusions; empty sides are skipped.
func Joined(includeParam, excludeParam string) Rule {
	return func(f providers.FilterValue, r *Result) (bool, error) {
		v, ok := f.(providers.MultiSelectFilter)
		if !ok {
			return false, providers.InvalidInput("multi-select filter", f.FilterID())
		}
		if len(v.Included) > 0 {
			r.Query.Push(includeParam, strings.Join(v.Included, ","))
		}
		if excludeParam != "" && len(v.Excluded) > 0 {
			r.Query.Push(excludeParam, strings.Join(v.Excluded, ","))
		}
		return false, nil
	}
}
