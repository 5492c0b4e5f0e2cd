package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
)

func TestClassesCmd_PrintsResolution(t *testing.T) {
	var diags domain.Diagnostics
	diags.AddWarning(domain.CodeSpec, "Skipping Mapping: unknown category", "", "Other elements")

	mock := &mockImporter{report: &driving.ClassReport{
		Classes: []driving.ClassResolution{
			{Spec: domain.ClassSpec{Key: "LabFolder", Class: "lab.Entry", Type: domain.KindMain}, Resolved: true},
			{
				Spec: domain.ClassSpec{
					Key: "Steps", Class: "lab.Missing", Type: domain.KindSubSection,
					Attribute: "processes", Repeats: domain.RepeatList,
				},
				Error: "member not found: lab.Missing",
			},
		},
		Diagnostics: diags,
	}}
	cleanup := setupServices(Services{Importer: mock})
	defer cleanup()

	out, err := execute("classes", "map.yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "LabFolder")
	assert.Contains(t, out, "[ok]")
	assert.Contains(t, out, "[unresolved]")
	assert.Contains(t, out, "-> processes")
	assert.Contains(t, out, "list")
	assert.Contains(t, out, "member not found: lab.Missing")
	assert.Contains(t, out, "Warning: ")
}

func TestClassesCmd_Errors(t *testing.T) {
	t.Run("service not configured", func(t *testing.T) {
		cleanup := setupServices(Services{})
		defer cleanup()

		_, err := execute("classes", "map.yaml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "import service not configured")
	})

	t.Run("load failure", func(t *testing.T) {
		cleanup := setupServices(Services{Importer: &mockImporter{err: errors.New("boom")}})
		defer cleanup()

		_, err := execute("classes", "map.txt")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load mapping file")
	})
}

func TestExtractCmd(t *testing.T) {
	pools := &domain.Pools{
		Data: domain.DataContent{"meta": map[string]any{"id": "42"}},
		Text: domain.TextContent{"Summary": "Two steps;"},
		Tables: []domain.TableRecord{{
			Name:    "Protocol",
			Columns: []string{"step"},
			Rows:    []map[string]any{{"step": "mix"}},
		}},
	}

	t.Run("dumps pools", func(t *testing.T) {
		cleanup := setupServices(Services{Importer: &mockImporter{pools: pools}})
		defer cleanup()

		out, err := execute("extract", "42")

		require.NoError(t, err)
		assert.Contains(t, out, "Protocol")
		assert.Contains(t, out, "Two steps;")
		assert.Contains(t, out, "mix")
	})

	t.Run("json output", func(t *testing.T) {
		cleanup := setupServices(Services{Importer: &mockImporter{pools: pools}})
		defer cleanup()

		out, err := execute("extract", "42", "--json")

		require.NoError(t, err)
		assert.Contains(t, out, `"Summary": "Two steps;"`)
	})

	t.Run("unknown entry", func(t *testing.T) {
		cleanup := setupServices(Services{Importer: &mockImporter{err: domain.ErrNotFound}})
		defer cleanup()

		_, err := execute("extract", "nope")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
