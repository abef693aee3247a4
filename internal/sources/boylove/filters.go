package boylove

import (
	"github.com/brogergvhs/mangasrc/internal/filters"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/route"
)

const (
	defaultStatus     = "2"
	defaultSort       = "1"
	defaultRating     = "0"
	defaultPermission = "2"
)

var (
	statusCodes     = map[string]string{"全部": "2", "連載中": "0", "已完結": "1"}
	ratingCodes     = map[string]string{"全部": "0", "清水": "1", "有肉": "2"}
	permissionCodes = map[string]string{"全部": "2", "一般": "0", "VIP": "1"}

	// index 0 is popularity, 1 is last updated
	sortCodes = []string{"0", "1"}
)

var filterMapper = filters.NewMapper().
	Text("author", filters.ToSearch()).
	Sort("排序方式", filters.SortIndex("sort", sortCodes, defaultSort)).
	Select("閱覽權限", filters.Enum("permission", permissionCodes)).
	Select("連載狀態", filters.Enum("status", statusCodes)).
	Select("內容分級", filters.Enum("rating", ratingCodes)).
	Select("genre", filters.ToSearch()).
	MultiSelect("標籤", filters.Included("tags"))

// searchRoute picks the search endpoint for a free-text query or a
// redirecting filter, and the category endpoint otherwise.
func searchRoute(query string, page int, values []providers.FilterValue) (route.Route, error) {
	res, err := filterMapper.Fold(query, values)
	if err != nil {
		return nil, err
	}

	if res.Search {
		return SearchRoute{Keyword: res.Keyword, Page: page}, nil
	}

	return FiltersRoute{
		Tags:           res.Lists["tags"],
		Status:         res.Slot("status", defaultStatus),
		Sort:           res.Slot("sort", defaultSort),
		Page:           page,
		ContentRating:  res.Slot("rating", defaultRating),
		ViewPermission: res.Slot("permission", defaultPermission),
	}, nil
}
