package kanban_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matt-steen/kanban-board/pkg/board"
	"github.com/matt-steen/kanban-board/pkg/kanban"
	"github.com/matt-steen/kanban-board/pkg/store"
	"github.com/matt-steen/kanban-board/pkg/viewstate"
	"github.com/stretchr/testify/assert"
)

const body = `{
	"tickets": [
		{"id": "CAM-1", "title": "beta", "userId": "usr-1", "status": "Backlog", "priority": 2},
		{"id": "CAM-2", "title": "alpha", "status": "Todo", "priority": 4},
		{"id": "CAM-3", "title": "gamma", "userId": "usr-9", "status": "Todo", "priority": 1}
	],
	"users": [
		{"id": "usr-1", "name": "Anoop sharma", "available": false}
	]
}`

type memKV map[string]string

func (m memKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := m[key]

	return value, ok, nil
}

func (m memKV) Set(ctx context.Context, key, value string) error {
	m[key] = value

	return nil
}

func newSession(t *testing.T, status int, kv memKV) *kanban.Session {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "nope", status)

			return
		}

		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	view := viewstate.New(context.Background(), kv)

	return kanban.NewSession(store.New(server.URL, server.Client()), view)
}

func labels(columns []board.Column) []string {
	out := []string{}
	for _, c := range columns {
		out = append(out, c.Label)
	}

	return out
}

func TestInitialSnapshotIsLoading(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	session := newSession(t, http.StatusOK, memKV{})
	snapshot := session.Snapshot()

	assert.True(snapshot.Loading)
	assert.Nil(snapshot.Err)
	assert.Empty(snapshot.Columns)
	assert.Equal(board.DefaultViewState(), snapshot.View)
}

func TestLoadBuildsBoard(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	session := newSession(t, http.StatusOK, memKV{})

	snapshots := []kanban.Snapshot{}
	session.OnChange(func(s kanban.Snapshot) { snapshots = append(snapshots, s) })

	assert.Nil(session.Load(context.Background()))

	assert.Equal(1, len(snapshots))

	snapshot := session.Snapshot()
	assert.False(snapshot.Loading)
	assert.Equal([]string{"Todo", "Backlog"}, labels(snapshot.Columns))
	assert.Equal("CAM-2", snapshot.Columns[0].Tickets[0].ID)
}

func TestLoadFailure(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	session := newSession(t, http.StatusBadGateway, memKV{})

	err := session.Load(context.Background())
	assert.NotNil(err)

	snapshot := session.Snapshot()
	assert.False(snapshot.Loading)
	assert.Equal(err, snapshot.Err)
	assert.Empty(snapshot.Columns)
}

func TestViewChangesRecompute(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	kv := memKV{}
	session := newSession(t, http.StatusOK, kv)
	assert.Nil(session.Load(context.Background()))

	assert.Nil(session.SetGroupingKey(context.Background(), "user"))

	snapshot := session.Snapshot()
	assert.Equal(board.GroupByUser, snapshot.View.Grouping)
	assert.Equal([]string{"Anoop sharma", "Unassigned", "Unknown user (usr-9)"}, labels(snapshot.Columns))
	assert.Equal("user", kv[viewstate.GroupByKey])

	assert.Nil(session.SetGroupingKey(context.Background(), "priority"))
	assert.Nil(session.SetSortKey(context.Background(), "title"))

	snapshot = session.Snapshot()
	assert.Equal([]string{"Medium", "Urgent", "Low"}, labels(snapshot.Columns))
	assert.Equal("title", kv[viewstate.SortByKey])
}

func TestInvalidViewChangeKeepsBoard(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	session := newSession(t, http.StatusOK, memKV{})
	assert.Nil(session.Load(context.Background()))

	before := session.Snapshot()

	assert.NotNil(session.SetGroupingKey(context.Background(), "tag"))
	assert.Equal(before, session.Snapshot())
}

func TestRestoredViewStateApplies(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	session := newSession(t, http.StatusOK, memKV{viewstate.GroupByKey: "priority", viewstate.SortByKey: "bogus"})
	assert.Nil(session.Load(context.Background()))

	snapshot := session.Snapshot()
	assert.Equal(board.ViewState{Grouping: board.GroupByPriority, Sorting: board.SortByPriority}, snapshot.View)
	assert.Equal([]string{"Medium", "Urgent", "Low"}, labels(snapshot.Columns))
}
