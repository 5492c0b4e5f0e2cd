package domain

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// ArchiveSuffix is appended to archive names to form their file name.
const ArchiveSuffix = ".archive.json"

// Reference points at a persisted archive. It replaces Archive-typed
// instances in their parent.
type Reference struct {
	// Upload is the containing upload.
	Upload string

	// ArchiveID identifies the persisted archive.
	ArchiveID string

	// FileName is the archive's main file name.
	FileName string
}

// String returns the upload-relative reference to the archive data section.
func (r Reference) String() string {
	return "../upload/archive/mainfile/" + r.FileName + "#data"
}

// MarshalJSON writes the reference as its string form.
func (r Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// Archive is one persisted unit: a section serialised under a name.
type Archive struct {
	// ID is stable for a given upload and file name.
	ID string

	// Upload is the containing upload.
	Upload string

	// Name is the display name the archive was persisted under.
	Name string

	// FileName is derived from Name with ArchiveFileName.
	FileName string

	// SectionType is the qualified name of the root section type.
	SectionType string

	// Data is the JSON serialisation of the section.
	Data json.RawMessage

	// CreatedAt is when the archive was first persisted.
	CreatedAt time.Time

	// UpdatedAt is when the archive was last persisted.
	UpdatedAt time.Time
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ArchiveFileName derives a file name from an archive name.
func ArchiveFileName(name string) string {
	base := unsafeFileChars.ReplaceAllString(strings.TrimSpace(name), "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "unnamed"
	}
	return base + ArchiveSuffix
}

// NewArchive serialises section into an Archive.
func NewArchive(id, upload, name string, section *Section) (*Archive, error) {
	data, err := json.Marshal(section)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Archive{
		ID:          id,
		Upload:      upload,
		Name:        name,
		FileName:    ArchiveFileName(name),
		SectionType: section.Type.QualifiedName(),
		Data:        data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
