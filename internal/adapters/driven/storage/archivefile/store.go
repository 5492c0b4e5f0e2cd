// Package archivefile persists archives as JSON files, one per archive, in
// one directory per upload. Files have the NOMAD archive layout with the
// section under "data".
package archivefile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/elnmap/internal/adapters/driven/storage"
	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArchiveStore = (*Store)(nil)

// Store writes archives below a root directory.
type Store struct {
	mu   sync.Mutex
	root string
}

type fileMetadata struct {
	ID          string    `json:"entry_id"`
	Upload      string    `json:"upload_id"`
	Name        string    `json:"entry_name"`
	SectionType string    `json:"section_type"`
	CreatedAt   time.Time `json:"entry_create_time"`
	UpdatedAt   time.Time `json:"last_processing_time"`
}

type archiveFile struct {
	Metadata fileMetadata    `json:"metadata"`
	Data     json.RawMessage `json:"data"`
}

// NewStore creates a store writing below root.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: output directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the output directory.
func (s *Store) Root() string {
	return s.root
}

// Persist writes the archive of section to <root>/<upload>/<file name>.
func (s *Store) Persist(_ context.Context, section *domain.Section, upload, name string) (domain.Reference, error) {
	archive, ref, err := storage.NewArchive(section, upload, name)
	if err != nil {
		return domain.Reference{}, fmt.Errorf("serialising archive: %w", err)
	}
	dir, err := s.uploadDir(upload)
	if err != nil {
		return domain.Reference{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(dir, archive.FileName)
	if existing, err := readArchive(path); err == nil {
		archive.CreatedAt = existing.CreatedAt
	}

	out, err := json.MarshalIndent(archiveFile{
		Metadata: fileMetadata{
			ID:          archive.ID,
			Upload:      archive.Upload,
			Name:        archive.Name,
			SectionType: archive.SectionType,
			CreatedAt:   archive.CreatedAt,
			UpdatedAt:   archive.UpdatedAt,
		},
		Data: archive.Data,
	}, "", "  ")
	if err != nil {
		return domain.Reference{}, fmt.Errorf("encoding archive: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return domain.Reference{}, fmt.Errorf("creating upload directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0600); err != nil {
		return domain.Reference{}, fmt.Errorf("writing archive: %w", err)
	}
	return ref, nil
}

// GetArchive finds an archive by ID.
func (s *Store) GetArchive(ctx context.Context, id string) (*domain.Archive, error) {
	all, err := s.ListArchives(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListArchives returns the archives of an upload ordered by file name.
func (s *Store) ListArchives(_ context.Context, upload string) ([]domain.Archive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uploads := []string{upload}
	if upload == "" {
		entries, err := os.ReadDir(s.root)
		if err != nil {
			return nil, fmt.Errorf("reading output directory: %w", err)
		}
		uploads = uploads[:0]
		for _, e := range entries {
			if e.IsDir() {
				uploads = append(uploads, e.Name())
			}
		}
		sort.Strings(uploads)
	}

	var archives []domain.Archive
	for _, u := range uploads {
		dir, err := s.uploadDir(u)
		if err != nil {
			return nil, err
		}
		files, err := filepath.Glob(filepath.Join(dir, "*"+domain.ArchiveSuffix))
		if err != nil {
			return nil, err
		}
		sort.Strings(files)
		for _, f := range files {
			a, err := readArchive(f)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", filepath.Base(f), err)
			}
			archives = append(archives, *a)
		}
	}
	return archives, nil
}

// DeleteArchive removes the file of an archive.
func (s *Store) DeleteArchive(ctx context.Context, id string) error {
	a, err := s.GetArchive(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	dir, err := s.uploadDir(a.Upload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(filepath.Join(dir, a.FileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting archive: %w", err)
	}
	return nil
}

// uploadDir returns the directory of upload, refusing names that leave root.
func (s *Store) uploadDir(upload string) (string, error) {
	if upload == "" || upload == "." || upload == ".." || strings.ContainsAny(upload, `/\`) {
		return "", fmt.Errorf("%w: invalid upload name %q", domain.ErrInvalidInput, upload)
	}
	return filepath.Join(s.root, upload), nil
}

func readArchive(path string) (*domain.Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f archiveFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &domain.Archive{
		ID:          f.Metadata.ID,
		Upload:      f.Metadata.Upload,
		Name:        f.Metadata.Name,
		FileName:    filepath.Base(path),
		SectionType: f.Metadata.SectionType,
		Data:        f.Data,
		CreatedAt:   f.Metadata.CreatedAt,
		UpdatedAt:   f.Metadata.UpdatedAt,
	}, nil
}
