package mcp

import (
	"context"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
)

// mockImporter is a mock implementation of driving.Importer.
type mockImporter struct {
	result  *driving.ImportResult
	report  *driving.ClassReport
	pools   *domain.Pools
	err     error
	lastReq driving.ImportRequest
}

func (m *mockImporter) Import(_ context.Context, req driving.ImportRequest) (*driving.ImportResult, error) {
	m.lastReq = req
	return m.result, m.err
}

func (m *mockImporter) Classes(_ context.Context, _ string) (*driving.ClassReport, error) {
	return m.report, m.err
}

func (m *mockImporter) Extract(_ context.Context, _ string) (*domain.Pools, error) {
	return m.pools, m.err
}

// mockArchiveService is a mock implementation of driving.ArchiveService.
type mockArchiveService struct {
	archives []domain.Archive
	archive  *domain.Archive
	err      error
}

func (m *mockArchiveService) List(_ context.Context, _ string) ([]domain.Archive, error) {
	return m.archives, m.err
}

func (m *mockArchiveService) Get(_ context.Context, _ string) (*domain.Archive, error) {
	return m.archive, m.err
}

func (m *mockArchiveService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockSchemaService is a mock implementation of driving.SchemaService.
type mockSchemaService struct {
	types []*domain.SectionType
}

func (m *mockSchemaService) Types() []*domain.SectionType {
	return m.types
}

func (m *mockSchemaService) Describe(name string) (*domain.SectionType, error) {
	for _, t := range m.types {
		if t.QualifiedName() == name {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}
