package controller

import (
	"strings"

	"github.com/matt-steen/kanban-board/pkg/board"
)

// statusIcon returns a colored glyph for a status, or an empty string for statuses without one.
func statusIcon(status string) string {
	switch strings.ToLower(status) {
	case strings.ToLower(board.StatusBacklog):
		return "[gray]◌[-]"
	case strings.ToLower(board.StatusTodo):
		return "[white]○[-]"
	case strings.ToLower(board.StatusInProgress):
		return "[yellow]◐[-]"
	case strings.ToLower(board.StatusDone):
		return "[blue]●[-]"
	case strings.ToLower(board.StatusCancelled):
		return "[gray]⊘[-]"
	}

	return ""
}

// priorityIcon returns a colored glyph for a priority level.
func priorityIcon(priority int) string {
	switch priority {
	case board.PriorityUrgent:
		return "[red]![-]"
	case board.PriorityHigh:
		return "[orange]▇[-]"
	case board.PriorityMedium:
		return "[orange]▅[-]"
	case board.PriorityLow:
		return "[orange]▃[-]"
	}

	return "[gray]…[-]"
}
