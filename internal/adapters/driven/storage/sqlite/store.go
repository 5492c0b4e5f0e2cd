package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/elnmap/internal/adapters/driven/storage"
	"github.com/custodia-labs/elnmap/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
)

// DatabaseFile is the database file name within the data directory.
const DatabaseFile = "archives.db"

// Store is a SQLite-backed archive store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a store in dataDir.
// If dataDir is empty, defaults to ~/.elnmap/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".elnmap", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ArchiveStore returns the archive store backed by this database.
func (s *Store) ArchiveStore() driven.ArchiveStore {
	return &archiveStore{store: s}
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}
	return version, nil
}

func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion()
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(content); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== Archive Store ====================

// archiveStore implements driven.ArchiveStore.
type archiveStore struct {
	store *Store
}

var _ driven.ArchiveStore = (*archiveStore)(nil)

// Persist stores or replaces the archive of section.
func (s *archiveStore) Persist(ctx context.Context, section *domain.Section, upload, name string) (domain.Reference, error) {
	archive, ref, err := storage.NewArchive(section, upload, name)
	if err != nil {
		return domain.Reference{}, fmt.Errorf("serialising archive: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO archives (id, upload, name, file_name, section_type, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			section_type = excluded.section_type,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, archive.ID, archive.Upload, archive.Name, archive.FileName, archive.SectionType,
		string(archive.Data), archive.CreatedAt, archive.UpdatedAt)
	if err != nil {
		return domain.Reference{}, fmt.Errorf("saving archive: %w", err)
	}
	return ref, nil
}

// GetArchive retrieves an archive by ID.
func (s *archiveStore) GetArchive(ctx context.Context, id string) (*domain.Archive, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, upload, name, file_name, section_type, data, created_at, updated_at
		FROM archives WHERE id = ?
	`, id)

	archive, err := scanArchive(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning archive: %w", err)
	}
	return archive, nil
}

// ListArchives returns the archives of an upload ordered by file name.
func (s *archiveStore) ListArchives(ctx context.Context, upload string) ([]domain.Archive, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, upload, name, file_name, section_type, data, created_at, updated_at
		FROM archives
		WHERE ? = '' OR upload = ?
		ORDER BY upload, file_name
	`, upload, upload)
	if err != nil {
		return nil, fmt.Errorf("querying archives: %w", err)
	}
	defer rows.Close()

	var archives []domain.Archive //nolint:prealloc // size unknown from query
	for rows.Next() {
		archive, err := scanArchive(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning archive: %w", err)
		}
		archives = append(archives, *archive)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archives: %w", err)
	}
	return archives, nil
}

// DeleteArchive removes an archive.
func (s *archiveStore) DeleteArchive(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM archives WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting archive: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArchive(row scanner) (*domain.Archive, error) {
	var (
		archive              domain.Archive
		data                 string
		createdAt, updatedAt sql.NullTime
	)
	if err := row.Scan(&archive.ID, &archive.Upload, &archive.Name, &archive.FileName,
		&archive.SectionType, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	archive.Data = []byte(data)
	if createdAt.Valid {
		archive.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		archive.UpdatedAt = updatedAt.Time
	}
	return &archive, nil
}
