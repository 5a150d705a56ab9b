package store_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matt-steen/kanban-board/pkg/board"
	"github.com/matt-steen/kanban-board/pkg/store"
	"github.com/stretchr/testify/assert"
)

const body = `{
	"tickets": [
		{"id": "CAM-1", "title": "Update user profile page UI", "tag": ["Feature request"], "userId": "usr-1", "status": "Todo", "priority": 4},
		{"id": "CAM-2", "title": "Add multi-language support", "tag": ["Feature Request"], "userId": "usr-2", "status": "In progress", "priority": 3}
	],
	"users": [
		{"id": "usr-1", "name": "Anoop sharma", "available": false},
		{"id": "usr-2", "name": "Yogesh", "available": true}
	]
}`

func serve(t *testing.T, calls *int32, handler http.HandlerFunc) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestLoad(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	var calls int32

	server := serve(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})

	s := store.New(server.URL, server.Client())
	assert.Equal(store.StatePending, s.State())
	assert.Empty(s.Tickets())

	err := s.Load(context.Background())
	assert.Nil(err)
	assert.Equal(store.StateLoaded, s.State())
	assert.Nil(s.Err())

	tickets := s.Tickets()
	assert.Equal(2, len(tickets))
	assert.Equal("CAM-1", tickets[0].ID)
	assert.Equal(board.Tags{"Feature request"}, tickets[0].Tags)

	name, ok := s.Directory().Name("usr-2")
	assert.True(ok)
	assert.Equal("Yogesh", name)

	// a loaded store is read only; loading again does not refetch
	assert.Nil(s.Load(context.Background()))
	assert.Equal(int32(1), atomic.LoadInt32(&calls))
}

func TestTicketsReturnsCopy(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	var calls int32

	server := serve(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})

	s := store.New(server.URL, server.Client())
	assert.Nil(s.Load(context.Background()))

	tickets := s.Tickets()
	tickets[0].Title = "changed"

	assert.Equal("Update user profile page UI", s.Tickets()[0].Title)
}

func TestLoadBadStatus(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	var calls int32

	server := serve(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	s := store.New(server.URL, server.Client())

	err := s.Load(context.Background())
	assert.NotNil(err)
	assert.Contains(err.Error(), "unexpected status 500 Internal Server Error")
	assert.Equal(store.StateFailed, s.State())
	assert.Equal(err, s.Err())
	assert.Empty(s.Tickets())
	assert.Empty(s.Directory())
}

func TestLoadMalformedJSON(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	var calls int32

	server := serve(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tickets": [{"id": "CAM-1", "priority": "high"}]`)
	})

	s := store.New(server.URL, server.Client())

	err := s.Load(context.Background())
	assert.NotNil(err)
	assert.Contains(err.Error(), "error decoding response")
	assert.Equal(store.StateFailed, s.State())
	assert.Empty(s.Tickets())
}

func TestLoadRetryAfterFailure(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	var calls int32

	server := serve(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&calls) == 1 {
			http.Error(w, "try later", http.StatusServiceUnavailable)

			return
		}

		fmt.Fprint(w, body)
	})

	s := store.New(server.URL, server.Client())

	assert.NotNil(s.Load(context.Background()))
	assert.Equal(store.StateFailed, s.State())
	assert.Equal(int32(1), atomic.LoadInt32(&calls))

	assert.Nil(s.Load(context.Background()))
	assert.Equal(store.StateLoaded, s.State())
	assert.Nil(s.Err())
	assert.Equal(2, len(s.Tickets()))
}

func TestLoadInProgress(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	var calls int32

	entered := make(chan struct{})
	release := make(chan struct{})

	server := serve(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		fmt.Fprint(w, body)
	})

	s := store.New(server.URL, server.Client())

	done := make(chan error)

	go func() {
		done <- s.Load(context.Background())
	}()

	<-entered

	err := s.Load(context.Background())
	assert.True(errors.Is(err, store.ErrLoadInProgress))
	assert.Equal(store.StatePending, s.State())

	close(release)

	assert.Nil(<-done)
	assert.Equal(store.StateLoaded, s.State())
	assert.Equal(int32(1), atomic.LoadInt32(&calls))
}

func TestLoadTimeout(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	var calls int32

	release := make(chan struct{})
	defer close(release)

	server := serve(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	s := store.New(server.URL, server.Client(), store.WithTimeout(50*time.Millisecond))

	err := s.Load(context.Background())
	assert.NotNil(err)
	assert.True(errors.Is(err, context.DeadlineExceeded))
	assert.Equal(store.StateFailed, s.State())
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("pending", store.StatePending.String())
	assert.Equal("loaded", store.StateLoaded.String())
	assert.Equal("failed", store.StateFailed.String())
	assert.Equal("State(7)", store.State(7).String())
}
