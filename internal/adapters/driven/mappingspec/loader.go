package mappingspec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
	"github.com/custodia-labs/elnmap/internal/logger"
)

// DefaultCacheSize is the number of parsed specifications kept by NewLoader.
const DefaultCacheSize = 64

// Ensure Loader implements the interface.
var _ driven.SpecLoader = (*Loader)(nil)

// Loader reads specification files from disk. Parsed specifications are
// cached by path, size and modification time, so an edited file is parsed
// again.
type Loader struct {
	cache *lru.Cache[string, *domain.MappingSpec]
}

// NewLoader creates a loader caching up to size specifications.
func NewLoader(size int) (*Loader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *domain.MappingSpec](size)
	if err != nil {
		return nil, err
	}
	return &Loader{cache: cache}, nil
}

// FormatOf selects the format from the file extension.
func FormatOf(ref string) (Format, error) {
	switch filepath.Ext(ref) {
	case ".json":
		return FormatJSON, nil
	case ".yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s is neither .json nor .yaml", domain.ErrUnsupportedFormat, filepath.Base(ref))
	}
}

// Load parses the specification at ref.
// The returned specification is shared and must not be modified.
func (l *Loader) Load(ctx context.Context, ref string) (*domain.MappingSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatOf(ref)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(ref)
	if err != nil {
		return nil, fmt.Errorf("stat mapping file: %w", err)
	}
	abs, err := filepath.Abs(ref)
	if err != nil {
		abs = ref
	}
	cacheKey := fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano())
	if spec, ok := l.cache.Get(cacheKey); ok {
		logger.Debug("Using cached mapping %s", ref)
		return spec, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	spec, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(ref), err)
	}
	l.cache.Add(cacheKey, spec)
	logger.Debug("Loaded mapping %s: %d classes, %d data, %d text, %d table bindings",
		ref, len(spec.Classes), len(spec.Data), len(spec.Text), len(spec.Table))
	return spec, nil
}

// Len returns the number of cached specifications.
func (l *Loader) Len() int {
	return l.cache.Len()
}
