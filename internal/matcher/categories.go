package matcher

// Game category enum values as issued by the upstream catalog — opaque
// tags, except for this fixed filter set.
const (
	CategoryMainGame            int32 = 0
	CategoryStandaloneExpansion int32 = 4
	CategoryRemake              int32 = 8
	CategoryRemaster            int32 = 9
)

// DefaultSearchCategories is the fixed filter applied to the primary-name
// search.
var DefaultSearchCategories = []int32{CategoryMainGame, CategoryRemake, CategoryRemaster, CategoryStandaloneExpansion}
