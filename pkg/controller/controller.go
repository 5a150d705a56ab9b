package controller

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/kanban-board/pkg/kanban"
	"github.com/matt-steen/kanban-board/pkg/store"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	boardPage   = "board"
	displayPage = "display"
)

// Controller mediates between the session and the view.
type Controller struct {
	ctx     context.Context
	session *kanban.Session
	app     *tview.Application
	pages   *tview.Pages

	header     *tview.Table
	columns    *tview.Flex
	statusLine *tview.TextView

	displayForm   *tview.Form
	groupDropDown *tview.DropDown
	sortDropDown  *tview.DropDown

	events     map[rune]KeyEvent
	formEvents map[tcell.Key]KeyEvent

	snapshot kanban.Snapshot
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, session *kanban.Session) (*Controller, error) {
	c := Controller{
		ctx:     ctx,
		session: session,
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
	}

	c.initEvents()

	c.pages.AddPage(boardPage, c.getBoardGrid(), true, true)
	c.pages.AddPage(displayPage, c.getDisplayFormGrid(), true, false)

	c.render(session.Snapshot())

	session.OnChange(func(snapshot kanban.Snapshot) {
		c.app.QueueUpdateDraw(func() {
			c.render(snapshot)
		})
	})

	return &c, nil
}

// Go starts the fetch and runs the app until the user quits.
func (c *Controller) Go() error {
	c.app.SetInputCapture(c.handleKeys)

	go c.load()

	if err := c.app.SetRoot(c.pages, true).Run(); err != nil {
		return err
	}

	return nil
}

// load runs one fetch attempt; the session publishes the result.
func (c *Controller) load() {
	err := c.session.Load(c.ctx)
	if errors.Is(err, store.ErrLoadInProgress) {
		log.Debug().Msg("ignoring load request; a load is already running")
	}
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() != tcell.KeyRune {
		return evt
	}

	if k, ok := c.events[evt.Rune()]; ok {
		return k.Action(evt)
	}

	return evt
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	if k, ok := c.formEvents[evt.Key()]; ok {
		return k.Action(evt)
	}

	return evt
}

func (c *Controller) showBoard() {
	c.app.SetInputCapture(c.handleKeys)
	c.pages.SwitchToPage(boardPage)
}
