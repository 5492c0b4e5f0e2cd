package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

var sampleType = &domain.SectionType{
	Module: "pkg",
	Name:   "Sample",
	Attributes: []domain.AttributeDef{
		{Name: "comment", Kind: domain.AttrString},
	},
}

func newSample(t *testing.T, comment string) *domain.Section {
	t.Helper()
	s := domain.NewSection(sampleType)
	require.NoError(t, s.Set("comment", comment))
	return s
}

func TestArchiveStore_PersistAndGet(t *testing.T) {
	store := NewArchiveStore()
	ctx := context.Background()

	ref, err := store.Persist(ctx, newSample(t, "first"), "up", "Sample 1")
	require.NoError(t, err)
	assert.Equal(t, "Sample_1.archive.json", ref.FileName)

	archive, err := store.GetArchive(ctx, ref.ArchiveID)
	require.NoError(t, err)
	assert.Equal(t, "Sample 1", archive.Name)
	assert.Equal(t, "pkg.Sample", archive.SectionType)
	assert.JSONEq(t, `{"m_def":"pkg.Sample","comment":"first"}`, string(archive.Data))
}

func TestArchiveStore_Persist_Overwrites(t *testing.T) {
	store := NewArchiveStore()
	ctx := context.Background()

	first, err := store.Persist(ctx, newSample(t, "first"), "up", "Sample")
	require.NoError(t, err)
	second, err := store.Persist(ctx, newSample(t, "second"), "up", "Sample")
	require.NoError(t, err)

	assert.Equal(t, first.ArchiveID, second.ArchiveID)

	archives, err := store.ListArchives(ctx, "up")
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Contains(t, string(archives[0].Data), "second")
}

func TestArchiveStore_ListArchives_FiltersByUpload(t *testing.T) {
	store := NewArchiveStore()
	ctx := context.Background()

	_, err := store.Persist(ctx, newSample(t, "x"), "b", "Zeta")
	require.NoError(t, err)
	_, err = store.Persist(ctx, newSample(t, "x"), "a", "Beta")
	require.NoError(t, err)
	_, err = store.Persist(ctx, newSample(t, "x"), "a", "Alpha")
	require.NoError(t, err)

	inA, err := store.ListArchives(ctx, "a")
	require.NoError(t, err)
	require.Len(t, inA, 2)
	assert.Equal(t, "Alpha", inA[0].Name)
	assert.Equal(t, "Beta", inA[1].Name)

	all, err := store.ListArchives(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestArchiveStore_GetArchive_NotFound(t *testing.T) {
	store := NewArchiveStore()

	_, err := store.GetArchive(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiveStore_DeleteArchive(t *testing.T) {
	store := NewArchiveStore()
	ctx := context.Background()

	ref, err := store.Persist(ctx, newSample(t, "x"), "up", "Sample")
	require.NoError(t, err)

	require.NoError(t, store.DeleteArchive(ctx, ref.ArchiveID))
	_, err = store.GetArchive(ctx, ref.ArchiveID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
