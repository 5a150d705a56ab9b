package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/matt-steen/kanban-board/pkg/board"
	"github.com/rs/zerolog/log"
)

// DefaultEndpoint serves the ticket and user lists.
const DefaultEndpoint = "https://api.quicksell.co/v1/internal/frontend-assignment"

// ErrLoadInProgress is returned by Load while another load is running.
var ErrLoadInProgress = errors.New("load already in progress")

// State is the load state of a Store.
type State int

const (
	// StatePending means no load has finished yet.
	StatePending State = iota
	// StateLoaded means tickets and users are available.
	StateLoaded
	// StateFailed means the last load attempt failed. No data is available.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// payload is the body returned by the endpoint.
type payload struct {
	Tickets []board.Ticket `json:"tickets"`
	Users   []board.User   `json:"users"`
}

// Store holds the tickets and users fetched once at startup. After a successful load it is read only.
type Store struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration

	mu      sync.Mutex
	state   State
	loading bool
	err     error
	tickets []board.Ticket
	users   board.Directory
}

// Option configures a Store.
type Option func(*Store)

// WithTimeout bounds each load attempt. Zero means no bound.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.timeout = timeout
	}
}

// New creates a Store for the given endpoint. A nil client uses http.DefaultClient.
func New(endpoint string, client *http.Client, opts ...Option) *Store {
	if client == nil {
		client = http.DefaultClient
	}

	s := &Store{
		endpoint: endpoint,
		client:   client,
		state:    StatePending,
		tickets:  []board.Ticket{},
		users:    board.Directory{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load fetches tickets and users. It returns ErrLoadInProgress if a load is already running and does
// nothing once a load has succeeded. A failed load leaves the store in StateFailed; calling Load
// again starts a new attempt.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()

		return ErrLoadInProgress
	}

	if s.state == StateLoaded {
		s.mu.Unlock()

		return nil
	}

	s.loading = true
	s.state = StatePending
	s.err = nil
	s.mu.Unlock()

	data, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false

	if err != nil {
		s.state = StateFailed
		s.err = err

		log.Error().Err(err).Str("endpoint", s.endpoint).Msg("error loading tickets")

		return err
	}

	s.tickets = data.Tickets
	if s.tickets == nil {
		s.tickets = []board.Ticket{}
	}

	s.users = board.NewDirectory(data.Users)
	s.state = StateLoaded

	log.Info().
		Int("tickets", len(s.tickets)).
		Int("users", len(s.users)).
		Msg("loaded tickets")

	return nil
}

func (s *Store) fetch(ctx context.Context) (*payload, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", s.endpoint, err)
	}

	request.Header.Set("Accept", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", s.endpoint, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, response.Body)

		return nil, fmt.Errorf("error fetching %s: unexpected status %s", s.endpoint, response.Status)
	}

	var data payload
	if err := json.NewDecoder(response.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding response from %s: %w", s.endpoint, err)
	}

	return &data, nil
}

// State returns the current load state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Err returns the error of the last failed load, or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Tickets returns a copy of the fetched tickets. It is empty until a load succeeds.
func (s *Store) Tickets() []board.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := make([]board.Ticket, len(s.tickets))
	copy(tickets, s.tickets)

	return tickets
}

// Directory returns the fetched user directory. It is empty until a load succeeds.
func (s *Store) Directory() board.Directory {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.users
}
