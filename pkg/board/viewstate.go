package board

// GroupingKey selects the ticket attribute used to split tickets into columns.
type GroupingKey string

// SortKey selects the ticket attribute used to order tickets within a column.
type SortKey string

const (
	GroupByStatus   GroupingKey = "status"
	GroupByUser     GroupingKey = "user"
	GroupByPriority GroupingKey = "priority"

	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
)

// Defaults used until a stored value is read, and whenever a stored value is unrecognized.
const (
	DefaultGroupingKey = GroupByStatus
	DefaultSortKey     = SortByPriority
)

// ViewState is the active grouping and sort key.
type ViewState struct {
	Grouping GroupingKey
	Sorting  SortKey
}

// DefaultViewState returns the compiled-in defaults.
func DefaultViewState() ViewState {
	return ViewState{Grouping: DefaultGroupingKey, Sorting: DefaultSortKey}
}

// GroupingKeys lists the valid grouping keys in menu order.
func GroupingKeys() []GroupingKey {
	return []GroupingKey{GroupByStatus, GroupByUser, GroupByPriority}
}

// SortKeys lists the valid sort keys in menu order.
func SortKeys() []SortKey {
	return []SortKey{SortByPriority, SortByTitle}
}

// ParseGroupingKey returns the grouping key named by s.
func ParseGroupingKey(s string) (GroupingKey, bool) {
	for _, k := range GroupingKeys() {
		if string(k) == s {
			return k, true
		}
	}

	return "", false
}

// ParseSortKey returns the sort key named by s.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range SortKeys() {
		if string(k) == s {
			return k, true
		}
	}

	return "", false
}
