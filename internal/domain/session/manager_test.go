package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/domain/canvas"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

func newTestManager(t *testing.T) (*Manager, *canvas.Store) {
	t.Helper()
	store := canvas.NewStore(canvas.DefaultConfig(), nil, nil)
	return NewManager(store, t.TempDir()), store
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	m, store := newTestManager(t)
	store.Dispatch(canvas.Open(types.WindowSpec{Kind: "report", Title: "Pinned", Pinned: true}))
	store.Dispatch(canvas.Open(types.WindowSpec{Kind: "board", Title: "Transient"}))

	saved, err := m.Save("workspace", "Two windows")
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "workspace", saved.Name)

	loaded, err := m.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)

	// Only pinned windows are captured.
	require.Len(t, loaded.Snapshot.Windows, 1)
	for _, w := range loaded.Snapshot.Windows {
		assert.Equal(t, "Pinned", w.Title)
		assert.True(t, w.Pinned)
	}
}

func TestLoadFromDiskWithoutCache(t *testing.T) {
	m, store := newTestManager(t)
	store.Dispatch(canvas.Open(types.WindowSpec{Kind: "report", Pinned: true}))

	saved, err := m.Save("workspace", "")
	require.NoError(t, err)

	// A fresh manager over the same directory has no cache to lean on.
	fresh := NewManager(store, m.dir)
	loaded, err := fresh.Load(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Len(t, loaded.Snapshot.Windows, 1)
}

func TestLoadMissingSession(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Load("sess_missing")
	assert.Error(t, err)
}

func TestRestoreSwapsLayout(t *testing.T) {
	m, store := newTestManager(t)
	store.Dispatch(canvas.Open(types.WindowSpec{Kind: "report", Title: "Keep", Pinned: true}))

	saved, err := m.Save("workspace", "")
	require.NoError(t, err)

	store.Dispatch(canvas.Open(types.WindowSpec{Kind: "board", Title: "Later"}))
	require.Equal(t, 2, store.Stats().TotalWindows)

	require.NoError(t, m.Restore(saved.ID))
	stats := store.Stats()
	assert.Equal(t, 1, stats.TotalWindows)
	require.NotNil(t, stats.FocusedID)

	w, ok := store.Get(*stats.FocusedID)
	require.True(t, ok)
	assert.Equal(t, "Keep", w.Title)
}

func TestRestoreUnknownSession(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Error(t, m.Restore("sess_missing"))
}

func TestListFindsDiskSessions(t *testing.T) {
	m, store := newTestManager(t)
	store.Dispatch(canvas.Open(types.WindowSpec{Kind: "report", Pinned: true}))

	_, err := m.Save("one", "")
	require.NoError(t, err)
	_, err = m.Save("two", "")
	require.NoError(t, err)

	fresh := NewManager(store, m.dir)
	metadata, err := fresh.List()
	require.NoError(t, err)
	assert.Len(t, metadata, 2)
}

func TestDeleteSession(t *testing.T) {
	m, store := newTestManager(t)
	store.Dispatch(canvas.Open(types.WindowSpec{Kind: "report", Pinned: true}))

	saved, err := m.Save("workspace", "")
	require.NoError(t, err)

	require.NoError(t, m.Delete(saved.ID))
	_, err = m.Load(saved.ID)
	assert.Error(t, err)

	// Deleting twice is not an error.
	assert.NoError(t, m.Delete(saved.ID))
}

func TestSaveDefault(t *testing.T) {
	m, _ := newTestManager(t)

	saved, err := m.SaveDefault()
	require.NoError(t, err)
	assert.Equal(t, "default", saved.Name)

	stats := m.Stats()
	assert.Equal(t, 1, stats["total_sessions"])
	assert.NotNil(t, stats["last_saved"])
}
