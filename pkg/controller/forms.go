package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/kanban-board/pkg/board"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) switchToDisplayForm() {
	c.syncDisplayForm(c.snapshot.View)

	c.displayForm.SetFocus(0)

	c.pages.SwitchToPage(displayPage)

	c.app.SetInputCapture(c.handleFormKeys)
}

func (c *Controller) getDisplayFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true)

	header := c.getFormHeader("Display")
	c.initDisplayForm()

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.displayForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getFormHeader(title string) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)
	table.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))

	row := 1

	for key, event := range c.formEvents {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)
		table.SetCell(row, 0, tview.NewTableCell(text))
		row++
	}

	return table
}

func groupingOptions() []string {
	options := []string{}
	for _, k := range board.GroupingKeys() {
		options = append(options, string(k))
	}

	return options
}

func sortOptions() []string {
	options := []string{}
	for _, k := range board.SortKeys() {
		options = append(options, string(k))
	}

	return options
}

func indexOf(options []string, value string) int {
	for i, o := range options {
		if o == value {
			return i
		}
	}

	return -1
}

func (c *Controller) initDisplayForm() {
	c.displayForm = tview.NewForm().
		AddDropDown("Grouping", groupingOptions(), 0, nil).
		AddDropDown("Ordering", sortOptions(), 0, nil)

	c.groupDropDown, _ = c.displayForm.GetFormItemByLabel("Grouping").(*tview.DropDown)
	c.sortDropDown, _ = c.displayForm.GetFormItemByLabel("Ordering").(*tview.DropDown)

	c.displayForm.AddButton("Apply", func() {
		c.applyDisplayForm()
		c.showBoard()
	})
}

// syncDisplayForm selects the active view in the drop downs.
func (c *Controller) syncDisplayForm(view board.ViewState) {
	if c.groupDropDown == nil || c.sortDropDown == nil {
		return
	}

	c.groupDropDown.SetCurrentOption(indexOf(groupingOptions(), string(view.Grouping)))
	c.sortDropDown.SetCurrentOption(indexOf(sortOptions(), string(view.Sorting)))
}

func (c *Controller) applyDisplayForm() {
	_, grouping := c.groupDropDown.GetCurrentOption()
	_, sorting := c.sortDropDown.GetCurrentOption()

	log.Debug().Str("grouping", grouping).Str("sorting", sorting).Msg("applying display options")

	view := c.session.Snapshot().View

	if grouping != string(view.Grouping) {
		if err := c.session.SetGroupingKey(c.ctx, grouping); err != nil {
			log.Warn().Err(err).Msg("error changing grouping")
		}
	}

	if sorting != string(view.Sorting) {
		if err := c.session.SetSortKey(c.ctx, sorting); err != nil {
			log.Warn().Err(err).Msg("error changing ordering")
		}
	}
}
