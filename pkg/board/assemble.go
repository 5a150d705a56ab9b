package board

import "fmt"

// Column is a rendered column: a group's label and its sorted tickets.
type Column struct {
	Key     string
	Label   string
	Tickets []Ticket
}

// Assemble sorts every group independently and labels it for display. Columns come out in the
// display order of groups.
func Assemble(groups *Groups, sorting SortKey, dir Directory) []Column {
	columns := make([]Column, 0, groups.Len())

	for _, group := range groups.All() {
		columns = append(columns, Column{
			Key:     group.Key,
			Label:   label(groups.Grouping(), group, dir),
			Tickets: SortTickets(group.Tickets, sorting),
		})
	}

	return columns
}

// Build groups, sorts, and labels tickets for the given view state.
func Build(tickets []Ticket, dir Directory, view ViewState) []Column {
	return Assemble(GroupTickets(tickets, view.Grouping), view.Sorting, dir)
}

func label(grouping GroupingKey, group *Group, dir Directory) string {
	switch grouping {
	case GroupByPriority:
		return PriorityName(group.Priority)
	case GroupByUser:
		return UserLabel(group.Key, dir)
	}

	return group.Key
}

// UserLabel resolves a user column key to a display name. IDs missing from the directory get a
// fallback label instead of failing.
func UserLabel(id string, dir Directory) string {
	if id == Unassigned {
		return "Unassigned"
	}

	if name, ok := dir.Name(id); ok {
		return name
	}

	return fmt.Sprintf("Unknown user (%s)", id)
}
