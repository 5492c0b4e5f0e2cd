package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
	"github.com/custodia-labs/elnmap/internal/logger"
)

// DefaultUpload names the containing upload when neither the request nor
// the service configures one.
const DefaultUpload = "default"

// Ensure ImportService implements the interface.
var _ driving.Importer = (*ImportService)(nil)

// ImportService runs the mapping engine for single entries.
// It holds no per-import state and is safe for concurrent use.
type ImportService struct {
	entries  driven.EntrySource
	loader   driven.SpecLoader
	resolver driven.TypeResolver
	walker   *Walker
	upload   string
}

// NewImportService creates a new import service.
func NewImportService(
	entries driven.EntrySource,
	loader driven.SpecLoader,
	resolver driven.TypeResolver,
	sink driven.PersistenceSink,
) *ImportService {
	return &ImportService{
		entries:  entries,
		loader:   loader,
		resolver: resolver,
		walker:   NewWalker(sink),
		upload:   DefaultUpload,
	}
}

// SetDefaultUpload sets the upload used when a request names none.
func (s *ImportService) SetDefaultUpload(upload string) {
	if upload != "" {
		s.upload = upload
	}
}

// Import maps one entry. Nothing is persisted when the specification,
// the entry or the tag selection fails.
func (s *ImportService) Import(ctx context.Context, req driving.ImportRequest) (*driving.ImportResult, error) {
	if req.EntryID == "" {
		return nil, fmt.Errorf("%w: entry id is required", domain.ErrInvalidInput)
	}

	spec, err := s.loadSpec(ctx, req.MappingFile)
	if err != nil {
		return nil, err
	}

	result := &driving.ImportResult{}
	report := newReporter(&result.Diagnostics)
	for _, w := range spec.Warnings {
		report.warn(domain.CodeSpec, "", "", "%s", w)
	}
	selection := buildSelection(spec, s.resolver, report)

	entry, err := s.entries.Get(ctx, req.EntryID)
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", req.EntryID, err)
	}

	key, err := SelectClass(selection, spec.ClassKeys(), entry.Tags)
	if err != nil {
		logger.Error("Entry %s: %v", req.EntryID, err)
		return nil, fmt.Errorf("select class: %w", err)
	}
	report.info(domain.CodeSelection, key, "", "%s template found.", key)

	upload := req.Upload
	if upload == "" {
		upload = s.upload
	}

	st := &walkState{
		spec:      spec,
		selection: selection,
		pools:     ExtractRecords(entry.Elements),
		rootKey:   key,
		root:      domain.NewSection(selection[key]),
		upload:    upload,
		diags:     &result.Diagnostics,
	}
	ref, err := s.walker.Walk(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("import entry %s: %w", req.EntryID, err)
	}

	result.ClassKey = key
	result.Root = st.root
	result.RootRef = ref
	result.Archives = st.archives
	return result, nil
}

// Classes resolves every class entry of a specification.
func (s *ImportService) Classes(ctx context.Context, mappingFile string) (*driving.ClassReport, error) {
	spec, err := s.loadSpec(ctx, mappingFile)
	if err != nil {
		return nil, err
	}

	report := &driving.ClassReport{}
	for _, w := range spec.Warnings {
		report.Diagnostics.AddWarning(domain.CodeSpec, w, "", "")
	}
	for _, cs := range spec.Classes {
		res := driving.ClassResolution{Spec: cs}
		if _, err := s.resolver.Resolve(cs.Class); err != nil {
			res.Error = resolveMessage(cs.Class, err)
			report.Diagnostics.AddWarning(domain.CodeUnresolvedType, res.Error, cs.Key, "")
		} else {
			res.Resolved = true
		}
		report.Classes = append(report.Classes, res)
	}
	return report, nil
}

// Extract returns the content pools of an entry.
func (s *ImportService) Extract(ctx context.Context, entryID string) (*domain.Pools, error) {
	if entryID == "" {
		return nil, fmt.Errorf("%w: entry id is required", domain.ErrInvalidInput)
	}
	entry, err := s.entries.Get(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", entryID, err)
	}
	return ExtractRecords(entry.Elements), nil
}

func (s *ImportService) loadSpec(ctx context.Context, mappingFile string) (*domain.MappingSpec, error) {
	if mappingFile == "" {
		return nil, fmt.Errorf("%w: mapping file is required", domain.ErrInvalidInput)
	}
	spec, err := s.loader.Load(ctx, mappingFile)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			logger.Error("The mapping file has an unsuitable format. Please use a json or yaml file.")
		}
		return nil, fmt.Errorf("load mapping: %w", err)
	}
	return spec, nil
}
