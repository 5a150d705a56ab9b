package board

import (
	"encoding/json"
	"fmt"
)

// These constants refer to the statuses sent by the endpoint. The set is open; tickets may carry
// any other status.
const (
	StatusTodo       = "Todo"
	StatusInProgress = "In Progress"
	StatusBacklog    = "Backlog"
	StatusDone       = "Done"
	StatusCancelled  = "Cancelled"
)

// Priority levels. Higher numbers are more urgent. PriorityNone marks a ticket without a priority and
// gets its own column when grouping by priority.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
	PriorityUrgent = 4
)

// Unassigned is the user column key for tickets without an assignee.
const Unassigned = ""

// Ticket is a single work item fetched from the remote endpoint.
type Ticket struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Priority    int    `json:"priority"`
	// UserID refers to User.ID; empty when the ticket is unassigned.
	UserID string `json:"userId,omitempty"`
	Tags   Tags   `json:"tag,omitempty"`
}

// Tags holds the free-text labels of a ticket. The endpoint sends either a single string or a list.
type Tags []string

// UnmarshalJSON accepts a string, a list of strings, or null.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list

		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("error decoding tag %s: %w", data, err)
	}

	if single == "" {
		*t = nil
	} else {
		*t = Tags{single}
	}

	return nil
}

// User is an entry of the user directory.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Directory indexes users by ID.
type Directory map[string]User

// NewDirectory builds a Directory from the fetched user list. Later duplicates win.
func NewDirectory(users []User) Directory {
	dir := make(Directory, len(users))
	for _, u := range users {
		dir[u.ID] = u
	}

	return dir
}

// Name returns the display name for the given user ID.
func (d Directory) Name(id string) (string, bool) {
	u, ok := d[id]
	if !ok {
		return "", false
	}

	return u.Name, true
}

// PriorityName returns the display name of a priority level.
func PriorityName(priority int) string {
	switch priority {
	case PriorityNone:
		return "No priority"
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}

	return fmt.Sprintf("Priority %d", priority)
}
