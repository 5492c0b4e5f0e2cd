package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

func TestArchiveListCmd(t *testing.T) {
	mock := &mockArchiveService{archives: []domain.Archive{
		{ID: "id-1", Upload: "u1", FileName: "Report.archive.json", SectionType: "lab.Report"},
	}}
	cleanup := setupServices(Services{Archive: mock})
	defer cleanup()

	out, err := execute("archive", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "id-1  u1/Report.archive.json")
	assert.Contains(t, out, "lab.Report")
}

func TestArchiveListCmd_Empty(t *testing.T) {
	cleanup := setupServices(Services{Archive: &mockArchiveService{}})
	defer cleanup()

	out, err := execute("archive", "list", "--upload", "u2")

	require.NoError(t, err)
	assert.Contains(t, out, "No archives found.")
}

func TestArchiveShowCmd(t *testing.T) {
	mock := &mockArchiveService{archive: &domain.Archive{ID: "id-1", Data: json.RawMessage(`{"name":"Report"}`)}}
	cleanup := setupServices(Services{Archive: mock})
	defer cleanup()

	out, err := execute("archive", "show", "id-1")

	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Report"`)
}

func TestArchiveShowCmd_NotFound(t *testing.T) {
	cleanup := setupServices(Services{Archive: &mockArchiveService{err: domain.ErrNotFound}})
	defer cleanup()

	_, err := execute("archive", "show", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiveDeleteCmd(t *testing.T) {
	mock := &mockArchiveService{}
	cleanup := setupServices(Services{Archive: mock})
	defer cleanup()

	out, err := execute("archive", "delete", "id-1")

	require.NoError(t, err)
	assert.Equal(t, "id-1", mock.deleted)
	assert.Contains(t, out, "Deleted archive id-1")
}

func TestArchiveCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupServices(Services{})
	defer cleanup()

	_, err := execute("archive", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive service not configured")
}
