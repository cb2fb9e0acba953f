package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/manuals/internal/core/corpus"
	"github.com/custodia-labs/manuals/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *SnapshotStore {
	t.Helper()

	store, err := NewSnapshotStore(filepath.Join(t.TempDir(), "data", "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Meta: domain.SnapshotMeta{
			ID:          "6f1c2d9e-0000-4000-8000-000000000001",
			CreatedAt:   time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC),
			Fingerprint: "abc123",
			Sources:     []string{"mechanical.pdf", "pyansys"},
		},
		Records: []domain.Record{
			{SourceID: "mechanical.pdf", Ordinal: 1, Label: "Intro", Body: "Overview of meshing basics"},
			{SourceID: "mechanical.pdf", Ordinal: 2, Body: "More meshing basics and mesh sizing"},
			{SourceID: "mechanical.pdf", Ordinal: 3, Label: "Advanced", Body: "Adaptive mesh refinement"},
			{SourceID: "pyansys", Ordinal: 1, Label: "Launching", Body: "from ansys.mapdl.core import launch_mapdl\nmapdl = launch_mapdl()"},
		},
	}
}

func TestNewSnapshotStore(t *testing.T) {
	t.Run("creates parent directory", func(t *testing.T) {
		store := setupTestStore(t)
		assert.FileExists(t, store.Path())
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSnapshotStore("")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("migrations are recorded once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.db")
		first, err := NewSnapshotStore(path)
		require.NoError(t, err)
		require.NoError(t, first.Close())

		second, err := NewSnapshotStore(path)
		require.NoError(t, err)
		defer second.Close()

		var count int
		require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
		assert.Equal(t, 1, count)
	})
}

func TestSnapshotStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)

	_, err = store.Meta(ctx)
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	want := testSnapshot()

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Meta.ID, got.Meta.ID)
	assert.True(t, want.Meta.CreatedAt.Equal(got.Meta.CreatedAt))
	assert.Equal(t, want.Meta.Fingerprint, got.Meta.Fingerprint)
	assert.Equal(t, want.Meta.Sources, got.Meta.Sources)
	assert.Equal(t, want.Records, got.Records)

	meta, err := store.Meta(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Meta.Sources, meta.Sources)
}

func TestSnapshotStore_SearchAfterReload(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	snap := testSnapshot()

	before, err := corpus.New(snap.Records, corpus.WithMeta(snap.Meta))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, before.Snapshot()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	after, err := corpus.New(loaded.Records, corpus.WithMeta(loaded.Meta))
	require.NoError(t, err)

	for _, q := range []string{"meshing", "mesh basics", "launch_mapdl", "refinement"} {
		query := domain.Query{Text: q}
		assert.Equal(t, before.Search(query), after.Search(query), q)
	}
	assert.Equal(t, before.Sources(), after.Sources())
}

func TestSnapshotStore_SaveReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testSnapshot()))

	next := &domain.Snapshot{
		Meta:    domain.SnapshotMeta{ID: "second", CreatedAt: time.Now(), Sources: []string{"fluent.pdf"}},
		Records: []domain.Record{{SourceID: "fluent.pdf", Ordinal: 4, Body: "Turbulence models"}},
	}
	require.NoError(t, store.Save(ctx, next))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Meta.ID)
	assert.Equal(t, []string{"fluent.pdf"}, got.Meta.Sources)
	assert.Equal(t, next.Records, got.Records)
}

func TestSnapshotStore_FailedSaveKeepsPrevious(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testSnapshot()))

	dup := &domain.Snapshot{
		Meta: domain.SnapshotMeta{ID: "broken", CreatedAt: time.Now()},
		Records: []domain.Record{
			{SourceID: "a", Ordinal: 1, Body: "x"},
			{SourceID: "a", Ordinal: 1, Body: "y"},
		},
	}
	assert.Error(t, store.Save(ctx, dup))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSnapshot().Meta.ID, got.Meta.ID)
	assert.Len(t, got.Records, 4)
}

func TestSnapshotStore_SaveNil(t *testing.T) {
	store := setupTestStore(t)
	assert.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidInput)
}

func TestSnapshotStore_Corrupt(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad timestamp", `UPDATE snapshot_meta SET created_at = 'yesterday'`},
		{"non-positive ordinal", `UPDATE records SET ordinal = 0 WHERE source_id = 'pyansys'`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := setupTestStore(t)
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, testSnapshot()))

			_, err := store.db.Exec(tc.query)
			require.NoError(t, err)

			_, err = store.Load(ctx)
			assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
		})
	}
}

func TestSnapshotStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")
	ctx := context.Background()

	store, err := NewSnapshotStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testSnapshot()))
	require.NoError(t, store.Close())

	reopened, err := NewSnapshotStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Records, 4)
}

func TestSnapshotStore_LoadIsConsistentDuringSaves(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	snapshotFor := func(id string, pages int) *domain.Snapshot {
		snap := &domain.Snapshot{Meta: domain.SnapshotMeta{
			ID:          id,
			CreatedAt:   time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
			Fingerprint: id,
			Sources:     []string{"guide.pdf"},
		}}
		for i := 1; i <= pages; i++ {
			snap.Records = append(snap.Records, domain.Record{SourceID: "guide.pdf", Ordinal: i, Body: id})
		}
		return snap
	}
	snapshots := []*domain.Snapshot{snapshotFor("first", 3), snapshotFor("second", 5)}
	require.NoError(t, store.Save(ctx, snapshots[0]))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			assert.NoError(t, store.Save(ctx, snapshots[i%2]))
		}
	}()

	for i := 0; i < 20; i++ {
		got, err := store.Load(ctx)
		require.NoError(t, err)
		want := 3
		if got.Meta.ID == "second" {
			want = 5
		}
		require.Len(t, got.Records, want, "meta %s paired with another snapshot's records", got.Meta.ID)
		for _, r := range got.Records {
			require.Equal(t, got.Meta.ID, r.Body)
		}
	}
	wg.Wait()
}
