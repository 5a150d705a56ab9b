package controller

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/kanban-board/pkg/board"
	"github.com/rivo/tview"
)

const (
	titleTagRatio = 2
)

// tagColors is a list of colors for tags to alternate through so that tickets with common tags are easier to spot.
func tagColors() []string {
	return []string{
		"#FF0000",
		"#00FF00",
		"#0000FF",
		"#FFFF00",
		"#FF00FF",
		"#00FFFF",
		"#AA0000",
		"#00AA00",
		"#AAAA00",
		"#AA00AA",
		"#00AAAA",
		"#AAAAAA",
	}
}

func tagColor(tag string) string {
	h := fnv.New32a()
	h.Write([]byte(tag))

	colors := tagColors()

	return colors[h.Sum32()%uint32(len(colors))]
}

// ColumnContent implements tview.TableContent for one board column.
type ColumnContent struct {
	tview.TableContentReadOnly
	column board.Column
}

// GetCell returns the cell at the given position or nil if no cell.
func (s *ColumnContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("id").SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("title").SetExpansion(titleTagRatio).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 2:
			return tview.NewTableCell("tags").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}

		return nil
	}

	if row-1 >= len(s.column.Tickets) {
		return nil
	}

	ticket := s.column.Tickets[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(fmt.Sprintf("%s %s", priorityIcon(ticket.Priority), tview.Escape(ticket.ID))).
			SetReference(ticket)
	case 1:
		return tview.NewTableCell(fmt.Sprintf("%s %s", statusIcon(ticket.Status), tview.Escape(ticket.Title))).
			SetExpansion(titleTagRatio)
	case 2:
		tags := []string{}
		for _, tag := range ticket.Tags {
			tags = append(tags, fmt.Sprintf("[%s]%s", tagColor(tag), tview.Escape(tag)))
		}

		return tview.NewTableCell(strings.Join(tags, "[white], ")).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (s *ColumnContent) GetRowCount() int {
	return len(s.column.Tickets) + 1
}

// GetColumnCount returns the number of columns in the table.
func (s *ColumnContent) GetColumnCount() int {
	return 3
}
