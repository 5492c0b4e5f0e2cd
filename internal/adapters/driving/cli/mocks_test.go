package cli

import (
	"bytes"
	"context"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
	"github.com/custodia-labs/elnmap/internal/logger"
)

// mockImporter implements driving.Importer for testing.
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

// mockArchiveService implements driving.ArchiveService for testing.
type mockArchiveService struct {
	archives []domain.Archive
	archive  *domain.Archive
	err      error
	deleted  string
}

func (m *mockArchiveService) List(_ context.Context, _ string) ([]domain.Archive, error) {
	return m.archives, m.err
}

func (m *mockArchiveService) Get(_ context.Context, _ string) (*domain.Archive, error) {
	return m.archive, m.err
}

func (m *mockArchiveService) Delete(_ context.Context, id string) error {
	m.deleted = id
	return m.err
}

// mockSchemaService implements driving.SchemaService for testing.
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
	return nil, domain.ErrMemberNotFound
}

// setupServices installs s and returns a function restoring the previous
// services and flag values.
func setupServices(s Services) func() {
	old := Services{
		Importer:   importer,
		Archive:    archiveService,
		Schema:     schemaService,
		Config:     configStore,
		WatchPaths: watchPaths,
	}
	SetServices(s)
	return func() {
		SetServices(old)
		resetFlags()
	}
}

func resetFlags() {
	verbose = false
	logger.SetVerbose(false)
	importUpload = ""
	importJSON = false
	importWatch = false
	extractJSON = false
	archiveUpload = ""
}

// execute runs rootCmd with args and returns everything written to stdout
// and stderr.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
