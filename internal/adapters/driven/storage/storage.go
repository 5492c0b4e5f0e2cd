// Package storage holds what the archive store adapters share.
package storage

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/elnmap/internal/core/domain"
)

// archiveNamespace scopes archive IDs derived with uuid.NewSHA1.
var archiveNamespace = uuid.MustParse("7d5b3c1e-4f0a-5b8e-9c61-2a4e8f0d9b37")

// ArchiveID derives the stable ID of the archive stored under fileName in
// upload. Persisting the same name twice yields the same ID.
func ArchiveID(upload, fileName string) string {
	return uuid.NewSHA1(archiveNamespace, []byte(upload+"/"+fileName)).String()
}

// NewArchive serialises section into an archive with a stable ID and
// returns it together with the reference that replaces the section.
func NewArchive(section *domain.Section, upload, name string) (*domain.Archive, domain.Reference, error) {
	fileName := domain.ArchiveFileName(name)
	archive, err := domain.NewArchive(ArchiveID(upload, fileName), upload, name, section)
	if err != nil {
		return nil, domain.Reference{}, err
	}
	ref := domain.Reference{Upload: upload, ArchiveID: archive.ID, FileName: archive.FileName}
	return archive, ref, nil
}
