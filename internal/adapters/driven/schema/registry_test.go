package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

func TestNewDefaultRegistry(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	entry, err := r.Resolve("labfolder_plugin.schema_packages.schema_package.LabFolderImport")
	require.NoError(t, err)
	assert.True(t, entry.HasAttribute("processes"))
	assert.True(t, entry.HasAttribute(domain.NameAttribute))

	step, err := r.Resolve("nomad.datamodel.metainfo.basesections.ActivityStep")
	require.NoError(t, err)
	def, ok := step.Attribute("duration")
	require.True(t, ok)
	assert.Equal(t, domain.AttrQuantity, def.Kind)
	assert.Equal(t, "s", def.Unit)

	types := r.Types()
	require.NotEmpty(t, types)
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1].QualifiedName(), types[i].QualifiedName())
	}
}

func TestRegistry_Resolve_Failures(t *testing.T) {
	r := NewRegistry()
	r.Register(&domain.SectionType{Module: "lab.schema", Name: "Sample"})

	tests := []struct {
		name       string
		input      string
		wantErr    error
		wantModule string
		wantMember string
	}{
		{"member missing", "lab.schema.Process", domain.ErrMemberNotFound, "lab.schema", "Process"},
		{"module missing", "other.schema.Sample", domain.ErrModuleNotFound, "other.schema", "Sample"},
		{"no module", "Sample", domain.ErrModuleNotFound, "", "Sample"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.input)
			require.ErrorIs(t, err, tt.wantErr)

			var re *domain.ResolveError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.wantModule, re.Module)
			assert.Equal(t, tt.wantMember, re.Member)
		})
	}
}

func TestRegistry_Register_Replaces(t *testing.T) {
	r := NewRegistry()
	r.Register(&domain.SectionType{Module: "m", Name: "A", Description: "old"})
	r.Register(&domain.SectionType{Module: "m", Name: "A", Description: "new"})

	got, err := r.Resolve("m.A")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Description)
	assert.Len(t, r.Types(), 1)
}

func TestRegistry_LoadDir(t *testing.T) {
	dir := t.TempDir()
	pkg := `
module: my_lab.schema
sections:
  - name: Synthesis
    attributes:
      - {name: temperature, kind: quantity, unit: degC}
      - {name: operator}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lab.yml"), []byte(pkg), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0600))

	r := NewRegistry()
	require.NoError(t, r.LoadDir(dir))

	syn, err := r.Resolve("my_lab.schema.Synthesis")
	require.NoError(t, err)
	def, ok := syn.Attribute("operator")
	require.True(t, ok)
	assert.Equal(t, domain.AttrString, def.Kind)
}

func TestRegistry_LoadDir_Errors(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.LoadDir(filepath.Join(t.TempDir(), "missing")))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("sections: []"), 0600))
	err := r.LoadDir(dir)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestParsePackage_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "module: [unclosed"},
		{"no module", "sections: [{name: A}]"},
		{"section without name", "module: m\nsections: [{description: x}]"},
		{"duplicate attribute", "module: m\nsections: [{name: A, attributes: [{name: x}, {name: x}]}]"},
		{"redeclared name", "module: m\nsections: [{name: A, attributes: [{name: name}]}]"},
		{"unknown kind", "module: m\nsections: [{name: A, attributes: [{name: x, kind: blob}]}]"},
		{"unit on string", "module: m\nsections: [{name: A, attributes: [{name: x, unit: m}]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePackage([]byte(tt.doc))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := ParsePackage([]byte("module: m\nsections: [{name: A, attributes: [{name: x, kind: quantity, unit: furlong}]}]"))
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)
}
