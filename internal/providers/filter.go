package providers

// FilterValue is one user-selected filter. The concrete types are
// TextFilter, SortFilter, SelectFilter, MultiSelectFilter and CheckFilter.
type FilterValue interface {
	FilterID() string
}

type TextFilter struct {
	ID    string
	Value string
}

type SortFilter struct {
	ID        string
	Index     int
	Ascending bool
}

type SelectFilter struct {
	ID    string
	Value string
}

type MultiSelectFilter struct {
	ID       string
	Included []string
	Excluded []string
}

type CheckFilter struct {
	ID    string
	Value int
}

func (f TextFilter) FilterID() string        { return f.ID }
func (f SortFilter) FilterID() string        { return f.ID }
func (f SelectFilter) FilterID() string      { return f.ID }
func (f MultiSelectFilter) FilterID() string { return f.ID }
func (f CheckFilter) FilterID() string       { return f.ID }

// FilterKind names the variant of a FilterValue for error messages.
func FilterKind(f FilterValue) string {
	switch f.(type) {
	case TextFilter:
		return "text"
	case SortFilter:
		return "sort"
	case SelectFilter:
		return "select"
	case MultiSelectFilter:
		return "multi-select"
	case CheckFilter:
		return "check"
	default:
		return "unknown"
	}
}

// FilterSpec describes a filter a source can offer at runtime.
type FilterSpec struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Kind       string   `json:"kind"`
	Options    []string `json:"options,omitempty"`
	CanExclude bool     `json:"canExclude,omitempty"`
}
