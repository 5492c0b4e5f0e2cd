package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

func schemaFixture() *mockSchemaService {
	return &mockSchemaService{types: []*domain.SectionType{{
		Module:      "lab",
		Name:        "Sample",
		Description: "A sample.",
		Attributes: []domain.AttributeDef{
			{Name: "length", Kind: domain.AttrQuantity, Unit: "m"},
			{Name: "steps", Kind: domain.AttrSection, Section: "lab.Step", Repeats: true},
			{Name: "comment", Kind: domain.AttrString},
		},
	}}}
}

func TestSchemaListCmd(t *testing.T) {
	cleanup := setupServices(Services{Schema: schemaFixture()})
	defer cleanup()

	out, err := execute("schema", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "lab.Sample (3 attributes)")
}

func TestSchemaListCmd_Empty(t *testing.T) {
	cleanup := setupServices(Services{Schema: &mockSchemaService{}})
	defer cleanup()

	out, err := execute("schema", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No section types registered.")
}

func TestSchemaShowCmd(t *testing.T) {
	cleanup := setupServices(Services{Schema: schemaFixture()})
	defer cleanup()

	out, err := execute("schema", "show", "lab.Sample")

	require.NoError(t, err)
	assert.Contains(t, out, "A sample.")
	assert.Contains(t, out, "quantity [m]")
	assert.Contains(t, out, "section lab.Step (list)")
}

func TestSchemaShowCmd_Unknown(t *testing.T) {
	cleanup := setupServices(Services{Schema: schemaFixture()})
	defer cleanup()

	_, err := execute("schema", "show", "lab.Nope")

	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestSchemaCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupServices(Services{})
	defer cleanup()

	_, err := execute("schema", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema service not configured")
}
