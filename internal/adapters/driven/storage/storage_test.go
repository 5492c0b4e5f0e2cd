package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

func TestArchiveID_Stable(t *testing.T) {
	a := ArchiveID("upload", "Sample.archive.json")
	b := ArchiveID("upload", "Sample.archive.json")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, ArchiveID("other", "Sample.archive.json"))
	assert.NotEqual(t, a, ArchiveID("upload", "Other.archive.json"))
}

func TestNewArchive(t *testing.T) {
	section := domain.NewSection(&domain.SectionType{Module: "pkg", Name: "Sample"})
	section.Name = "S 1"

	archive, ref, err := NewArchive(section, "up", "S 1")
	require.NoError(t, err)

	assert.Equal(t, "S_1.archive.json", archive.FileName)
	assert.Equal(t, "pkg.Sample", archive.SectionType)
	assert.Equal(t, archive.ID, ref.ArchiveID)
	assert.Equal(t, "up", ref.Upload)
	assert.Equal(t, "../upload/archive/mainfile/S_1.archive.json#data", ref.String())
	assert.JSONEq(t, `{"m_def":"pkg.Sample","name":"S 1"}`, string(archive.Data))
}
