package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

func TestBinder_BindData(t *testing.T) {
	data := domain.DataContent{
		"geometry": map[string]any{
			"length":   map[string]any{"value": "12.5", "unit": "m"},
			"width":    map[string]any{"value": 300.0, "unit": "mm"},
			"note":     map[string]any{"description": "n/a"},
			"empty":    map[string]any{},
			"badvalue": map[string]any{"value": "abc", "unit": "m", "description": "see notes"},
			"badunit":  map[string]any{"value": 1.0, "unit": "furlong"},
			"accel":    map[string]any{"value": "9.81", "unit": "m/s**2", "description": "g"},
		},
		"count": map[string]any{"value": "3", "unit": ""},
	}

	tests := []struct {
		name     string
		binding  domain.DataBinding
		wantOK   bool
		wantAttr string
		want     any
	}{
		{
			name:     "quantity",
			binding:  domain.DataBinding{Path: []string{"geometry", "length"}, Key: "x"},
			wantOK:   true,
			wantAttr: "x",
			want:     domain.Quantity{Magnitude: 12.5, Unit: "m"},
		},
		{
			name:     "quantity with power operator",
			binding:  domain.DataBinding{Path: []string{"geometry", "accel"}, Key: "x"},
			wantOK:   true,
			wantAttr: "x",
			want:     domain.Quantity{Magnitude: 9.81, Unit: "m/s**2"},
		},
		{
			name:     "quantity converted to declared unit",
			binding:  domain.DataBinding{Path: []string{"geometry", "width"}, Key: "length"},
			wantOK:   true,
			wantAttr: "length",
			want:     domain.Quantity{Magnitude: 0.3, Unit: "m"},
		},
		{
			name:     "description fallback",
			binding:  domain.DataBinding{Path: []string{"geometry", "note"}, Key: "x"},
			wantOK:   false,
			wantAttr: "x",
		},
		{
			name:     "description fallback on string attribute",
			binding:  domain.DataBinding{Path: []string{"geometry", "note"}, Key: "comment"},
			wantOK:   true,
			wantAttr: "comment",
			want:     "n/a",
		},
		{
			name:     "unparsable magnitude falls back to description",
			binding:  domain.DataBinding{Path: []string{"geometry", "badvalue"}, Key: "comment"},
			wantOK:   true,
			wantAttr: "comment",
			want:     "see notes",
		},
		{
			name:     "dimensionless quantity on number attribute",
			binding:  domain.DataBinding{Path: []string{"count"}, Key: "count"},
			wantOK:   true,
			wantAttr: "count",
			want:     3.0,
		},
		{
			name:     "neither value nor description",
			binding:  domain.DataBinding{Path: []string{"geometry", "empty"}, Key: "x"},
			wantOK:   false,
			wantAttr: "x",
		},
		{
			name:     "unknown unit",
			binding:  domain.DataBinding{Path: []string{"geometry", "badunit"}, Key: "x"},
			wantOK:   false,
			wantAttr: "x",
		},
		{
			name:     "missing path",
			binding:  domain.DataBinding{Path: []string{"geometry", "height"}, Key: "x"},
			wantOK:   false,
			wantAttr: "x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diags domain.Diagnostics
			section := domain.NewSection(sampleType)

			ok := NewBinder(&diags).BindData(section, "Sample", data, tt.binding)

			assert.Equal(t, tt.wantOK, ok)
			got, set := section.Get(tt.wantAttr)
			if !tt.wantOK {
				assert.False(t, set)
				require.Len(t, diags.Warnings, 1)
				assert.Equal(t, domain.CodeBindFailed, diags.Warnings[0].Code)
				assert.Equal(t, tt.binding.PathString(), diags.Warnings[0].KeyPath)
				return
			}
			assert.Empty(t, diags.Warnings)
			require.True(t, set)
			if q, isQ := tt.want.(domain.Quantity); isQ {
				gq := got.(domain.Quantity)
				assert.Equal(t, q.Unit, gq.Unit)
				assert.InDelta(t, q.Magnitude, gq.Magnitude, 1e-9)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinder_BindText(t *testing.T) {
	var diags domain.Diagnostics
	binder := NewBinder(&diags)
	section := domain.NewSection(sampleType)
	text := domain.TextContent{"Notes": "fine"}

	assert.True(t, binder.BindText(section, "Sample", text, domain.TextBinding{Header: "Notes", Key: "comment"}))
	got, _ := section.Get("comment")
	assert.Equal(t, "fine", got)

	assert.False(t, binder.BindText(section, "Sample", text, domain.TextBinding{Header: "Missing", Key: "comment"}))
	assert.False(t, binder.BindText(section, "Sample", text, domain.TextBinding{Header: "Notes", Key: "nope"}))
	assert.Len(t, diags.WarningsWithCode(domain.CodeBindFailed), 2)
}

func TestBinder_BindCell(t *testing.T) {
	var diags domain.Diagnostics
	binder := NewBinder(&diags)
	section := domain.NewSection(measurementType)
	row := map[string]any{"step": "heat", "time": 30.0}

	assert.True(t, binder.BindCell(section, "Steps", row, domain.TableBinding{Table: "P", Column: "step", Key: "step"}))
	assert.True(t, binder.BindCell(section, "Steps", row, domain.TableBinding{Table: "P", Column: "time", Key: "duration"}))

	got, _ := section.Get("duration")
	assert.Equal(t, domain.Quantity{Magnitude: 30, Unit: "s"}, got)

	assert.False(t, binder.BindCell(section, "Steps", row, domain.TableBinding{Table: "P", Column: "temp", Key: "step"}))
	warnings := diags.WarningsWithCode(domain.CodeBindFailed)
	require.Len(t, warnings, 1)
	assert.Equal(t, "P.temp", warnings[0].KeyPath)
}
