package history

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/pressable/internal/button"
	"github.com/llehouerou/pressable/internal/buttonstate"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "history.db"), slogt.New(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func event(name string, s buttonstate.State, origin button.Origin, at time.Time) button.TransitionEvent {
	return button.TransitionEvent{Button: name, State: s, Origin: origin, At: at}
}

func TestOpen_CreatesDirectoryAndSession(t *testing.T) {
	s := openTestStore(t)

	assert.NotEmpty(t, s.Session())

	other := openTestStore(t)
	assert.NotEqual(t, s.Session(), other.Session())
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, event("save", buttonstate.NewLoading(), button.OriginPress, time.Now())))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)

	require.NoError(t, s.Record(ctx, event("save", buttonstate.NewLoading(), button.OriginPress, base)))
	require.NoError(t, s.Record(ctx, event("save",
		buttonstate.NewError(errors.New("disk full"), "at write()"), button.OriginResult, base.Add(time.Second))))
	require.NoError(t, s.Record(ctx, event("upload", buttonstate.NewSuccess(), button.OriginResult, base.Add(2*time.Second))))

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "upload", entries[0].Button, "newest first")
	assert.Equal(t, buttonstate.Success, entries[0].Kind)

	failed := entries[1]
	assert.Equal(t, buttonstate.Error, failed.Kind)
	assert.Equal(t, "disk full", failed.Error)
	assert.Equal(t, "at write()", failed.Trace)
	assert.Equal(t, "result", failed.Origin)
	assert.Equal(t, s.Session(), failed.Session)
	assert.True(t, failed.At.Equal(base.Add(time.Second)))

	assert.Empty(t, entries[2].Error)
	assert.Empty(t, entries[2].Trace)
}

func TestList_Filters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)

	for i, name := range []string{"a", "b", "a", "a"} {
		st := buttonstate.NewSuccess()
		if i%2 == 1 {
			st = buttonstate.NewIdle()
		}
		require.NoError(t, s.Record(ctx, event(name, st, button.OriginResult, base.Add(time.Duration(i)*time.Minute))))
	}

	byButton, err := s.List(ctx, Filter{Button: "a"})
	require.NoError(t, err)
	assert.Len(t, byButton, 3)

	success := buttonstate.Success
	byKind, err := s.List(ctx, Filter{Kind: &success})
	require.NoError(t, err)
	assert.Len(t, byKind, 2)

	since, err := s.List(ctx, Filter{Since: base.Add(2 * time.Minute)})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	limited, err := s.List(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.True(t, limited[0].At.Equal(base.Add(3*time.Minute)))

	none, err := s.List(ctx, Filter{Session: "someone-else"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCounts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Record(ctx, event("a", buttonstate.NewLoading(), button.OriginPress, now)))
	require.NoError(t, s.Record(ctx, event("a", buttonstate.NewSuccess(), button.OriginResult, now)))
	require.NoError(t, s.Record(ctx, event("a", buttonstate.NewIdle(), button.OriginRevert, now)))
	require.NoError(t, s.Record(ctx, event("b", buttonstate.NewLoading(), button.OriginPress, now)))

	all, err := s.Counts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, map[buttonstate.Kind]int{
		buttonstate.Loading: 2,
		buttonstate.Success: 1,
		buttonstate.Idle:    1,
	}, all)

	onlyB, err := s.Counts(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, map[buttonstate.Kind]int{buttonstate.Loading: 1}, onlyB)
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)

	require.NoError(t, s.Record(ctx, event("a", buttonstate.NewLoading(), button.OriginPress, base)))
	require.NoError(t, s.Record(ctx, event("a", buttonstate.NewSuccess(), button.OriginResult, base.Add(time.Hour))))

	deleted, err := s.Prune(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, buttonstate.Success, entries[0].Kind)

	_, err = s.Prune(ctx, base.Add(time.Minute))
	assert.ErrorIs(t, err, ErrNothingToPrune)
}

func TestObserver_RecordsButtonTransitions(t *testing.T) {
	s := openTestStore(t)

	ch := button.NewChannel(slogt.New(t))
	ch.Subscribe(s.Observer(nil))
	ch.Emit(event("save", buttonstate.NewLoading(), button.OriginPress, time.Now()))
	ch.Emit(event("save", buttonstate.NewSuccess(), button.OriginResult, time.Now()))

	entries, err := s.List(context.Background(), Filter{Button: "save"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestObserver_ReportsFailures(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())

	var got error
	s.Observer(func(err error) { got = err })(event("save", buttonstate.NewIdle(), button.OriginRevert, time.Now()))

	assert.Error(t, got)
}

func TestObserver_LogsFailureWithButton(t *testing.T) {
	var buf bytes.Buffer
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s.Observer(nil)(event("save", buttonstate.NewIdle(), button.OriginRevert, time.Now()))

	assert.Contains(t, buf.String(), "Failed to record transition 'save'")
}
