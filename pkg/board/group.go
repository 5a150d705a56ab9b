package board

import (
	"sort"
	"strconv"
	"strings"
)

// statusOrder is the workflow order of the status columns. Statuses not listed here follow in the
// order they first appear in the ticket list.
func statusOrder() []string {
	return []string{StatusTodo, StatusInProgress, StatusBacklog}
}

// Group is one column's worth of tickets, in input order.
type Group struct {
	Key string
	// Priority is the numeric key when grouping by priority.
	Priority int
	Tickets  []Ticket
}

// Groups is an ordered mapping from column key to Group. Iteration follows display order.
type Groups struct {
	grouping GroupingKey
	groups   []*Group
	index    map[string]int
}

func newGroups(grouping GroupingKey) *Groups {
	return &Groups{
		grouping: grouping,
		groups:   []*Group{},
		index:    map[string]int{},
	}
}

// add appends the ticket to the group with the given key, creating the group at the end if needed.
func (g *Groups) add(key string, priority int, ticket Ticket) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.groups)
		g.index[key] = i
		g.groups = append(g.groups, &Group{Key: key, Priority: priority})
	}

	g.groups[i].Tickets = append(g.groups[i].Tickets, ticket)
}

func (g *Groups) reindex() {
	for i, group := range g.groups {
		g.index[group.Key] = i
	}
}

// Grouping returns the key the tickets were grouped by.
func (g *Groups) Grouping() GroupingKey {
	return g.grouping
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.groups)
}

// Keys returns the group keys in display order.
func (g *Groups) Keys() []string {
	keys := make([]string, 0, len(g.groups))
	for _, group := range g.groups {
		keys = append(keys, group.Key)
	}

	return keys
}

// Get returns the group with the given key.
func (g *Groups) Get(key string) (*Group, bool) {
	i, ok := g.index[key]
	if !ok {
		return nil, false
	}

	return g.groups[i], true
}

// All returns the groups in display order.
func (g *Groups) All() []*Group {
	all := make([]*Group, len(g.groups))
	copy(all, g.groups)

	return all
}

// Flatten returns every ticket, group by group in display order.
func (g *Groups) Flatten() []Ticket {
	tickets := []Ticket{}
	for _, group := range g.groups {
		tickets = append(tickets, group.Tickets...)
	}

	return tickets
}

// GroupTickets partitions tickets by the given key. Tickets keep their input order within each group.
// An unrecognized key groups by DefaultGroupingKey.
func GroupTickets(tickets []Ticket, grouping GroupingKey) *Groups {
	if _, ok := ParseGroupingKey(string(grouping)); !ok {
		grouping = DefaultGroupingKey
	}

	groups := newGroups(grouping)

	for _, t := range tickets {
		switch grouping {
		case GroupByStatus:
			groups.add(t.Status, 0, t)
		case GroupByPriority:
			groups.add(strconv.Itoa(t.Priority), t.Priority, t)
		case GroupByUser:
			groups.add(t.UserID, 0, t)
		}
	}

	if grouping == GroupByStatus {
		sort.SliceStable(groups.groups, func(i, j int) bool {
			return statusRank(groups.groups[i].Key) < statusRank(groups.groups[j].Key)
		})
		groups.reindex()
	}

	return groups
}

// statusRank returns the position of the status in statusOrder, or len(statusOrder) when it is not
// listed. Matching ignores case so that "In progress" and "In Progress" share a slot.
func statusRank(status string) int {
	order := statusOrder()
	for i, s := range order {
		if strings.EqualFold(s, status) {
			return i
		}
	}

	return len(order)
}
