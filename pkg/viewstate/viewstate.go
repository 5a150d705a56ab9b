package viewstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/matt-steen/kanban-board/pkg/board"
	"github.com/rs/zerolog/log"
)

// Keys under which each axis is persisted.
const (
	GroupByKey = "groupBy"
	SortByKey  = "sortBy"
)

var (
	// ErrInvalidGroupingKey is returned when setting a grouping key outside the known set.
	ErrInvalidGroupingKey = errors.New("invalid grouping key")
	// ErrInvalidSortKey is returned when setting a sort key outside the known set.
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// KV is the durable key-value store the view state is persisted to.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Manager holds the active grouping and sort key and writes every change through to a KV.
type Manager struct {
	kv KV

	mu          sync.Mutex
	state       board.ViewState
	subscribers []func(board.ViewState)
}

// New creates a Manager with the defaults, then overrides each axis with its stored value if the
// stored value is recognized.
func New(ctx context.Context, kv KV) *Manager {
	m := &Manager{
		kv:    kv,
		state: board.DefaultViewState(),
	}

	if value, ok := m.read(ctx, GroupByKey); ok {
		if grouping, valid := board.ParseGroupingKey(value); valid {
			m.state.Grouping = grouping
		} else {
			log.Warn().Str("key", GroupByKey).Str("value", value).Msg("ignoring unrecognized stored value")
		}
	}

	if value, ok := m.read(ctx, SortByKey); ok {
		if sorting, valid := board.ParseSortKey(value); valid {
			m.state.Sorting = sorting
		} else {
			log.Warn().Str("key", SortByKey).Str("value", value).Msg("ignoring unrecognized stored value")
		}
	}

	log.Debug().
		Str("grouping", string(m.state.Grouping)).
		Str("sorting", string(m.state.Sorting)).
		Msg("restored view state")

	return m
}

func (m *Manager) read(ctx context.Context, key string) (string, bool) {
	value, ok, err := m.kv.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("error reading stored view state; using default")

		return "", false
	}

	return value, ok
}

// State returns the active view state.
func (m *Manager) State() board.ViewState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// GroupingKey returns the active grouping key.
func (m *Manager) GroupingKey() board.GroupingKey {
	return m.State().Grouping
}

// SortKey returns the active sort key.
func (m *Manager) SortKey() board.SortKey {
	return m.State().Sorting
}

// Subscribe registers fn to be called with the new state after every change.
func (m *Manager) Subscribe(fn func(board.ViewState)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subscribers = append(m.subscribers, fn)
}

// SetGroupingKey makes value the active grouping key. An unknown value leaves the state unchanged
// and returns ErrInvalidGroupingKey.
func (m *Manager) SetGroupingKey(ctx context.Context, value string) error {
	grouping, ok := board.ParseGroupingKey(value)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidGroupingKey, value)
	}

	m.mu.Lock()
	m.state.Grouping = grouping
	m.mu.Unlock()

	m.write(ctx, GroupByKey, value)
	m.notify()

	return nil
}

// SetSortKey makes value the active sort key. An unknown value leaves the state unchanged and
// returns ErrInvalidSortKey.
func (m *Manager) SetSortKey(ctx context.Context, value string) error {
	sorting, ok := board.ParseSortKey(value)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, value)
	}

	m.mu.Lock()
	m.state.Sorting = sorting
	m.mu.Unlock()

	m.write(ctx, SortByKey, value)
	m.notify()

	return nil
}

// write persists one axis. Failures are logged and otherwise ignored.
func (m *Manager) write(ctx context.Context, key, value string) {
	if err := m.kv.Set(ctx, key, value); err != nil {
		log.Error().Err(err).Str("key", key).Str("value", value).Msg("error persisting view state")
	}
}

// notify runs subscribers without holding the lock so they may read the state.
func (m *Manager) notify() {
	m.mu.Lock()
	state := m.state
	subscribers := make([]func(board.ViewState), len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.mu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
}
