package board

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortTickets returns a sorted copy of tickets; the input slice is left untouched. Ties keep their
// input order. An unrecognized key returns the tickets in input order.
func SortTickets(tickets []Ticket, sorting SortKey) []Ticket {
	sorted := make([]Ticket, len(tickets))
	copy(sorted, tickets)

	switch sorting {
	case SortByPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Priority > sorted[j].Priority
		})
	case SortByTitle:
		// a Collator keeps internal buffers, so each call gets its own
		col := collate.New(language.English)

		sort.SliceStable(sorted, func(i, j int) bool {
			return col.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	}

	return sorted
}
