package kanban

import (
	"context"
	"sync"

	"github.com/matt-steen/kanban-board/pkg/board"
	"github.com/matt-steen/kanban-board/pkg/store"
	"github.com/matt-steen/kanban-board/pkg/viewstate"
	"github.com/rs/zerolog/log"
)

// Snapshot is everything the presentation layer needs for one render.
type Snapshot struct {
	Loading bool
	// Err is set when the last load failed.
	Err     error
	View    board.ViewState
	Columns []board.Column
}

// Session owns the ticket store and the view state, and recomputes the board whenever either
// changes.
type Session struct {
	store *store.Store
	view  *viewstate.Manager

	mu          sync.Mutex
	snapshot    Snapshot
	subscribers []func(Snapshot)
}

// NewSession creates a Session and computes the initial (loading) snapshot.
func NewSession(s *store.Store, view *viewstate.Manager) *Session {
	session := &Session{
		store: s,
		view:  view,
	}

	view.Subscribe(func(board.ViewState) {
		session.Recompute()
	})

	session.Recompute()

	return session
}

// OnChange registers fn to receive every recomputed snapshot.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
}

// Load fetches the tickets and recomputes the board, whether or not the fetch succeeded.
func (s *Session) Load(ctx context.Context) error {
	err := s.store.Load(ctx)

	s.Recompute()

	return err
}

// SetGroupingKey changes the grouping key; the board is recomputed through the view state subscription.
func (s *Session) SetGroupingKey(ctx context.Context, value string) error {
	return s.view.SetGroupingKey(ctx, value)
}

// SetSortKey changes the sort key; the board is recomputed through the view state subscription.
func (s *Session) SetSortKey(ctx context.Context, value string) error {
	return s.view.SetSortKey(ctx, value)
}

// Snapshot returns the latest computed snapshot.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot
}

// Recompute rebuilds the snapshot from the store and the view state and hands it to subscribers.
func (s *Session) Recompute() {
	snapshot := Snapshot{
		View:    s.view.State(),
		Columns: []board.Column{},
	}

	switch s.store.State() {
	case store.StatePending:
		snapshot.Loading = true
	case store.StateFailed:
		snapshot.Err = s.store.Err()
	case store.StateLoaded:
		snapshot.Columns = board.Build(s.store.Tickets(), s.store.Directory(), snapshot.View)
	}

	s.mu.Lock()
	s.snapshot = snapshot
	subscribers := make([]func(Snapshot), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	log.Debug().
		Bool("loading", snapshot.Loading).
		Bool("failed", snapshot.Err != nil).
		Str("grouping", string(snapshot.View.Grouping)).
		Str("sorting", string(snapshot.View.Sorting)).
		Int("columns", len(snapshot.Columns)).
		Msg("recomputed board")

	for _, fn := range subscribers {
		fn(snapshot)
	}
}
