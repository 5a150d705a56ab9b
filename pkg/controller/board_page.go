package controller

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/kanban-board/pkg/board"
	"github.com/matt-steen/kanban-board/pkg/kanban"
	"github.com/matt-steen/kanban-board/pkg/store"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) getBoardGrid() *tview.Grid {
	c.header = tview.NewTable().SetBorders(false).SetSelectable(false, false)
	c.columns = tview.NewFlex().SetDirection(tview.FlexColumn)
	c.statusLine = tview.NewTextView().SetDynamicColors(true)

	headerRows := 4

	grid := tview.NewGrid().SetRows(headerRows, 1, 0).SetBorders(true)

	grid.AddItem(c.header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.statusLine, 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.columns, 2, 0, 1, 1, 0, 0, true)

	return grid
}

// render redraws the board from a snapshot. It must run on the UI goroutine.
func (c *Controller) render(snapshot kanban.Snapshot) {
	c.snapshot = snapshot

	c.updateHeader(snapshot.View)
	c.statusLine.SetText(statusText(snapshot))

	c.columns.Clear()

	for _, column := range snapshot.Columns {
		c.columns.AddItem(c.getColumnTable(snapshot.View.Grouping, column), 0, 1, false)
	}

	c.syncDisplayForm(snapshot.View)

	log.Debug().Int("columns", len(snapshot.Columns)).Msg("rendered board")
}

// updateHeader shows the active view at the top, followed by 3 columns listing keyboard shortcuts.
// the first column contains misc shortcuts, the second contains "Group by" shortcuts,
// and the third contains "Order by" shortcuts. All three columns are sorted alphabetically.
func (c *Controller) updateHeader(view board.ViewState) {
	c.header.Clear()

	row := 0
	c.header.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf(
		"[yellow]Grouping:[white] %s  [yellow]Ordering:[white] %s", view.Grouping, view.Sorting,
	)))
	row++

	shortcuts := map[int][]string{
		0: {},
		1: {},
		2: {},
	}

	for key, event := range c.events {
		text := fmt.Sprintf("[orange]<%c>[white] %s", key, event.Description)

		switch {
		case len(event.Description) >= 5 && event.Description[:5] == "Group":
			shortcuts[1] = append(shortcuts[1], text)
		case len(event.Description) >= 5 && event.Description[:5] == "Order":
			shortcuts[2] = append(shortcuts[2], text)
		default:
			shortcuts[0] = append(shortcuts[0], text)
		}
	}

	for col := 0; col < 3; col++ {
		sort.Strings(shortcuts[col])
	}

	for row-1 < len(shortcuts[0]) || row-1 < len(shortcuts[1]) || row-1 < len(shortcuts[2]) {
		for col := 0; col < 3; col++ {
			if row-1 < len(shortcuts[col]) {
				c.header.SetCell(row, col, tview.NewTableCell(shortcuts[col][row-1]).SetExpansion(1))
			}
		}

		row++
	}
}

func (c *Controller) getColumnTable(grouping board.GroupingKey, column board.Column) *tview.Table {
	table := tview.NewTable().SetBorders(false)

	table.SetContent(&ColumnContent{column: column})
	table.SetSelectable(true, false)
	table.SetFixed(1, 0)

	table.SetBorder(true)
	table.SetTitle(columnTitle(grouping, column))
	table.SetTitleAlign(tview.AlignLeft)
	table.SetBorderColor(tcell.ColorGray)

	return table
}

// columnTitle is the icon, label, and ticket count shown on a column's border.
func columnTitle(grouping board.GroupingKey, column board.Column) string {
	icon := ""

	switch grouping {
	case board.GroupByStatus:
		icon = statusIcon(column.Key)
	case board.GroupByPriority:
		if len(column.Tickets) > 0 {
			icon = priorityIcon(column.Tickets[0].Priority)
		}
	case board.GroupByUser:
		icon = "@"
	}

	if icon != "" {
		icon += " "
	}

	return fmt.Sprintf(" %s%s [gray]%d[-] ", icon, tview.Escape(column.Label), len(column.Tickets))
}

// statusText is the single line under the header describing the fetch.
func statusText(snapshot kanban.Snapshot) string {
	switch loadState(snapshot.Loading, snapshot.Err) {
	case store.StatePending:
		return "[yellow]Loading tickets..."
	case store.StateFailed:
		return fmt.Sprintf("[red]could not load tickets: %s [white](press <r> to retry)", tview.Escape(snapshot.Err.Error()))
	}

	if len(snapshot.Columns) == 0 {
		return "[gray]no tickets"
	}

	count := 0
	for _, column := range snapshot.Columns {
		count += len(column.Tickets)
	}

	return fmt.Sprintf("[gray]%d tickets in %d columns", count, len(snapshot.Columns))
}
