package services

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

var (
	sampleType = &domain.SectionType{
		Module: "test.pkg",
		Name:   "Sample",
		Attributes: []domain.AttributeDef{
			{Name: "x", Kind: domain.AttrQuantity},
			{Name: "length", Kind: domain.AttrQuantity, Unit: "m"},
			{Name: "count", Kind: domain.AttrNumber},
			{Name: "comment", Kind: domain.AttrString},
		},
	}

	measurementType = &domain.SectionType{
		Module: "test.pkg",
		Name:   "Measurement",
		Attributes: []domain.AttributeDef{
			{Name: "step", Kind: domain.AttrString},
			{Name: "duration", Kind: domain.AttrQuantity, Unit: "s"},
		},
	}

	entryType = &domain.SectionType{
		Module: "test.pkg",
		Name:   "LabEntry",
		Attributes: []domain.AttributeDef{
			{Name: "sample", Kind: domain.AttrSection, Section: "test.pkg.Sample"},
			{Name: "steps", Kind: domain.AttrSection, Section: "test.pkg.Measurement", Repeats: true},
			{Name: "reports", Kind: domain.AttrReference, Repeats: true},
			{Name: "description", Kind: domain.AttrString},
		},
	}
)

// fakeResolver resolves the types it holds by qualified name.
type fakeResolver []*domain.SectionType

func (r fakeResolver) Resolve(name string) (*domain.SectionType, error) {
	module, member := domain.SplitQualifiedName(name)
	moduleFound := false
	for _, t := range r {
		if t.QualifiedName() == name {
			return t, nil
		}
		if t.Module == module {
			moduleFound = true
		}
	}
	sentinel := domain.ErrModuleNotFound
	if moduleFound {
		sentinel = domain.ErrMemberNotFound
	}
	return nil, &domain.ResolveError{Name: name, Module: module, Member: member, Err: sentinel}
}

func (r fakeResolver) Types() []*domain.SectionType { return r }

func testResolver() fakeResolver {
	return fakeResolver{entryType, measurementType, sampleType}
}

// fakeLoader returns spec for .json and .yaml references.
type fakeLoader struct {
	spec *domain.MappingSpec
}

func (l fakeLoader) Load(_ context.Context, ref string) (*domain.MappingSpec, error) {
	switch filepath.Ext(ref) {
	case ".json", ".yaml":
		return l.spec, nil
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}

func labEntrySpec() *domain.MappingSpec {
	return &domain.MappingSpec{
		Classes: []domain.ClassSpec{
			{Key: "LabEntry", Class: "test.pkg.LabEntry", Type: domain.KindMain, Name: "Entry-+LF.data.meta.id"},
			{Key: "Sample", Class: "test.pkg.Sample", Type: domain.KindSubSection, Attribute: "sample", Name: "Sample-+LF.data.meta.id"},
			{Key: "Steps", Class: "test.pkg.Measurement", Type: domain.KindSubSection, Attribute: "steps", Repeats: domain.RepeatList},
			{Key: "Report", Class: "test.pkg.Sample", Type: domain.KindArchive, Attribute: "reports", Repeats: domain.RepeatList, Name: "Report"},
		},
		Data: []domain.DataBinding{
			{Path: []string{"geometry", "length"}, Object: "Sample", Key: "x"},
			{Path: []string{"meta", "id"}, Object: "Sample", Key: "comment"},
		},
		Text: []domain.TextBinding{
			{Header: "Summary", Object: "LabEntry", Key: "description"},
		},
		Table: []domain.TableBinding{
			{Table: "Protocol", Column: "step", Object: "Steps", Key: "step"},
			{Table: "Protocol", Column: "time", Object: "Steps", Key: "duration"},
		},
	}
}

func cell(v any) domain.Cell { return domain.Cell{Value: v} }

// protocolTable builds a TABLE element with a header row and rows data rows.
func protocolTable(rows int) domain.RawElement {
	grid := map[string]map[string]domain.Cell{
		"0": {"0": cell("step"), "1": cell("time")},
	}
	for i := 1; i <= rows; i++ {
		grid[strconv.Itoa(i)] = map[string]domain.Cell{
			"0": cell("step " + strconv.Itoa(i)),
			"1": cell(float64(i * 10)),
		}
	}
	return domain.RawElement{
		Kind:  domain.ElementTable,
		Title: "Protocol",
		Table: &domain.TablePayload{Sheets: map[string]domain.Sheet{
			"0": {Data: domain.SheetData{DataTable: grid}},
		}},
	}
}

func labEntry(tableRows int) domain.Entry {
	return domain.Entry{
		ID:   "1001",
		Tags: []string{"LabEntry", "unrelated"},
		Elements: []domain.RawElement{
			{Kind: domain.ElementData, Data: map[string]any{
				"meta":     map[string]any{"id": map[string]any{"description": "X7"}},
				"geometry": map[string]any{"length": map[string]any{"value": "12.5", "unit": "m"}},
			}},
			{Kind: domain.ElementText, Text: "<p>Summary</p><p>All good</p>"},
			protocolTable(tableRows),
		},
	}
}
