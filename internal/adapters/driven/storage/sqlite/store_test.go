package sqlite

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "elnmap-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

var sampleType = &domain.SectionType{
	Module: "lab",
	Name:   "Sample",
	Attributes: []domain.AttributeDef{
		{Name: "mass", Kind: domain.AttrQuantity, Unit: "g"},
	},
}

func sample(t *testing.T, mass float64) *domain.Section {
	t.Helper()
	s := domain.NewSection(sampleType)
	require.NoError(t, s.Set("mass", mass))
	return s
}

// ==================== Store Creation Tests ====================

func TestNewStore_AppliesMigrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.FileExists(t, store.Path())
	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_Reopen(t *testing.T) {
	tempDir := t.TempDir()

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	ref, err := first.ArchiveStore().Persist(context.Background(), sample(t, 1), "up", "S")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(tempDir)
	require.NoError(t, err)
	defer second.Close()

	version, err := second.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	_, err = second.ArchiveStore().GetArchive(context.Background(), ref.ArchiveID)
	assert.NoError(t, err)
}

// ==================== Archive Store Tests ====================

func TestArchiveStore_PersistAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	archives := store.ArchiveStore()
	ctx := context.Background()

	ref, err := archives.Persist(ctx, sample(t, 2.5), "up", "Sample A")
	require.NoError(t, err)
	assert.Equal(t, "Sample_A.archive.json", ref.FileName)

	got, err := archives.GetArchive(ctx, ref.ArchiveID)
	require.NoError(t, err)
	assert.Equal(t, "up", got.Upload)
	assert.Equal(t, "Sample A", got.Name)
	assert.Equal(t, "lab.Sample", got.SectionType)
	assert.JSONEq(t, `{"m_def":"lab.Sample","mass":{"magnitude":2.5,"unit":"g"}}`, string(got.Data))
	assert.False(t, got.CreatedAt.IsZero())
}

func TestArchiveStore_Persist_Upserts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	archives := store.ArchiveStore()
	ctx := context.Background()

	first, err := archives.Persist(ctx, sample(t, 1), "up", "Sample")
	require.NoError(t, err)
	before, err := archives.GetArchive(ctx, first.ArchiveID)
	require.NoError(t, err)

	second, err := archives.Persist(ctx, sample(t, 2), "up", "Sample")
	require.NoError(t, err)
	assert.Equal(t, first.ArchiveID, second.ArchiveID)

	after, err := archives.GetArchive(ctx, second.ArchiveID)
	require.NoError(t, err)
	assert.Contains(t, string(after.Data), `"magnitude":2`)
	assert.True(t, after.CreatedAt.Equal(before.CreatedAt))

	all, err := archives.ListArchives(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestArchiveStore_ListArchives(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	archives := store.ArchiveStore()
	ctx := context.Background()

	for _, p := range []struct{ upload, name string }{
		{"b", "Zeta"}, {"a", "Beta"}, {"a", "Alpha"},
	} {
		_, err := archives.Persist(ctx, sample(t, 1), p.upload, p.name)
		require.NoError(t, err)
	}

	inA, err := archives.ListArchives(ctx, "a")
	require.NoError(t, err)
	require.Len(t, inA, 2)
	assert.Equal(t, "Alpha", inA[0].Name)
	assert.Equal(t, "Beta", inA[1].Name)

	all, err := archives.ListArchives(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[2].Upload)

	none, err := archives.ListArchives(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestArchiveStore_GetArchive_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.ArchiveStore().GetArchive(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiveStore_DeleteArchive(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	archives := store.ArchiveStore()
	ctx := context.Background()

	ref, err := archives.Persist(ctx, sample(t, 1), "up", "Sample")
	require.NoError(t, err)
	require.NoError(t, archives.DeleteArchive(ctx, ref.ArchiveID))

	_, err = archives.GetArchive(ctx, ref.ArchiveID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, archives.DeleteArchive(ctx, "already-gone"))
}
