package labfolder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

const exportDoc = `{
  "entries": [
    {
      "id": 1001,
      "title": "Synthesis 12",
      "tags": ["Synthesis", "2024"],
      "elements": [
        {"id": 1, "element_type": "DATA", "labfolder_data": {"meta": {"id": {"description": "X7"}}}},
        {"id": 2, "element_type": "TEXT", "content": "<p>Summary</p><p>fine</p>"},
        {"id": 3, "element_type": "TABLE", "title": "Protocol", "content": {
          "sheets": {"0": {"data": {"dataTable": {
            "0": {"0": {"value": "step"}},
            "1": {"0": {"value": "heat"}}
          }}}}
        }},
        {"id": 4, "element_type": "TEXT", "content": {"not": "a string"}},
        {"id": 5, "element_type": "FILE"}
      ]
    },
    {"id": "abc", "tags": []}
  ]
}`

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestExportSource_Get(t *testing.T) {
	src := NewExportSource(writeExport(t, exportDoc))

	entry, err := src.Get(context.Background(), "1001")
	require.NoError(t, err)

	assert.Equal(t, "Synthesis 12", entry.Title)
	assert.Equal(t, []string{"Synthesis", "2024"}, entry.Tags)
	require.Len(t, entry.Elements, 4)

	assert.Equal(t, domain.ElementData, entry.Elements[0].Kind)
	assert.Contains(t, entry.Elements[0].Data, "meta")

	assert.Equal(t, domain.ElementText, entry.Elements[1].Kind)
	assert.Equal(t, "<p>Summary</p><p>fine</p>", entry.Elements[1].Text)

	table := entry.Elements[2]
	assert.Equal(t, domain.ElementTable, table.Kind)
	assert.Equal(t, "Protocol", table.Title)
	require.NotNil(t, table.Table)
	assert.Equal(t, "heat", table.Table.Sheets["0"].Data.DataTable["1"]["0"].Value)

	assert.Equal(t, domain.ElementKind("FILE"), entry.Elements[3].Kind)
}

func TestExportSource_Get_StringID(t *testing.T) {
	src := NewExportSource(writeExport(t, exportDoc))

	entry, err := src.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, entry.Elements)

	_, err = src.Get(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportSource_List_TopLevelArray(t *testing.T) {
	src := NewExportSource(writeExport(t, `[{"id": 1}, {"id": 2}]`))

	entries, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, "2", entries[1].ID)
}

func TestExportSource_Errors(t *testing.T) {
	_, err := NewExportSource(filepath.Join(t.TempDir(), "missing.json")).List(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewExportSource(writeExport(t, "{broken")).List(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseExport_ProjectObject(t *testing.T) {
	entries, err := ParseExport([]byte(exportDoc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1001", entries[0].ID)
}
