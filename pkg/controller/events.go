package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/kanban-board/pkg/board"
	"github.com/matt-steen/kanban-board/pkg/store"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.events = map[rune]KeyEvent{}
	c.formEvents = map[tcell.Key]KeyEvent{}

	c.initGroupEvents(c.events)
	c.initSortEvents(c.events)

	c.events['d'] = KeyEvent{
		Description: "Display options",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToDisplayForm()

			return nil
		},
	}

	c.events['r'] = KeyEvent{
		Description: "Retry loading",
		Action:      c.getRetryAction(),
	}

	c.events['q'] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}

	c.formEvents[tcell.KeyEscape] = KeyEvent{
		Description: "Back to board",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showBoard()

			return nil
		},
	}
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		log.Info().Msg("terminating application")

		c.app.Stop()

		return nil
	}
}

// getRetryAction starts a new fetch, but only after a failed one.
func (c *Controller) getRetryAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.snapshot.Err == nil {
			return key
		}

		log.Info().Msg("retrying ticket load")

		go c.load()

		return nil
	}
}

func (c *Controller) getGroupAction(grouping board.GroupingKey) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if err := c.session.SetGroupingKey(c.ctx, string(grouping)); err != nil {
			log.Warn().Err(err).Msg("error changing grouping")
		}

		return nil
	}
}

func (c *Controller) initGroupEvents(events map[rune]KeyEvent) {
	events['s'] = KeyEvent{
		Description: "Group by Status",
		Action:      c.getGroupAction(board.GroupByStatus),
	}

	events['u'] = KeyEvent{
		Description: "Group by User",
		Action:      c.getGroupAction(board.GroupByUser),
	}

	events['p'] = KeyEvent{
		Description: "Group by Priority",
		Action:      c.getGroupAction(board.GroupByPriority),
	}
}

func (c *Controller) getSortAction(sorting board.SortKey) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if err := c.session.SetSortKey(c.ctx, string(sorting)); err != nil {
			log.Warn().Err(err).Msg("error changing ordering")
		}

		return nil
	}
}

func (c *Controller) initSortEvents(events map[rune]KeyEvent) {
	events['P'] = KeyEvent{
		Description: "Order by Priority",
		Action:      c.getSortAction(board.SortByPriority),
	}

	events['T'] = KeyEvent{
		Description: "Order by Title",
		Action:      c.getSortAction(board.SortByTitle),
	}
}

// loadState describes the fetch state for the status line.
func loadState(loading bool, err error) store.State {
	switch {
	case loading:
		return store.StatePending
	case err != nil:
		return store.StateFailed
	}

	return store.StateLoaded
}
