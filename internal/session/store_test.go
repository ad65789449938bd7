package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := tempStore(t)

	snap := Snapshot{
		Step:      3,
		FormData:  map[string]string{"firstnames": "Thabo", "surname": "Mokoena"},
		LastSaved: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(snap))

	got, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Step)
	assert.Equal(t, "Thabo", got.FormData["firstnames"])
	assert.True(t, got.LastSaved.Equal(snap.LastSaved))
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := tempStore(t)
	got, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	got, err := NewFileStore(path).Load()
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestFileStoreClear(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save(Snapshot{Step: 1}))
	require.NoError(t, store.Clear())

	got, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, got)

	// Clearing twice is fine.
	assert.NoError(t, store.Clear())
}

func TestSaveSchedulerCoalesces(t *testing.T) {
	store := tempStore(t)
	var step int = 1
	sched := NewSaveScheduler(store, func() Snapshot {
		return Snapshot{Step: step, FormData: map[string]string{}}
	}, 30*time.Millisecond, nil)
	defer sched.Close()

	// Burst of edits inside one window.
	sched.Mark()
	step = 2
	sched.Mark()
	step = 3
	sched.Mark()

	require.Eventually(t, func() bool {
		snap, err := store.Load()
		return err == nil && snap != nil
	}, time.Second, 5*time.Millisecond)

	snap, err := store.Load()
	require.NoError(t, err)
	// A single write, carrying the latest state at fire time.
	assert.Equal(t, 3, snap.Step)
	assert.False(t, snap.LastSaved.IsZero())
}

func TestSaveSchedulerFlush(t *testing.T) {
	store := tempStore(t)
	sched := NewSaveScheduler(store, func() Snapshot {
		return Snapshot{Step: 5}
	}, time.Hour, nil)

	sched.Mark()
	sched.Flush()

	snap, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 5, snap.Step)

	// Nothing pending: Flush is a no-op and Close stops cleanly.
	sched.Flush()
	sched.Close()
}

func TestSaveSchedulerDiscardKeepsClearedFileGone(t *testing.T) {
	store := tempStore(t)
	sched := NewSaveScheduler(store, func() Snapshot {
		return Snapshot{Step: 1, FormData: map[string]string{"gender": "Male"}}
	}, 20*time.Millisecond, nil)
	defer sched.Close()

	// A submit or reset deletes the file while a save is still pending.
	sched.Mark()
	require.NoError(t, store.Clear())
	sched.Discard()

	time.Sleep(80 * time.Millisecond)
	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap, "session file must stay deleted after discard")

	// Flush after Discard has nothing to write either.
	sched.Flush()
	snap, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSaveSchedulerClosedIgnoresMarks(t *testing.T) {
	store := tempStore(t)
	sched := NewSaveScheduler(store, func() Snapshot { return Snapshot{Step: 9} }, 10*time.Millisecond, nil)
	sched.Close()

	sched.Mark()
	time.Sleep(30 * time.Millisecond)

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
}
