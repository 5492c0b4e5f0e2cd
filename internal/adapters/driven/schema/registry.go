package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/elnmap/internal/core/domain"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
	"github.com/custodia-labs/elnmap/internal/logger"
)

//go:embed packages/*.yaml
var builtinPackages embed.FS

// Ensure Registry implements the interface.
var _ driven.TypeResolver = (*Registry)(nil)

// Registry is a static table of section types keyed by qualified name.
type Registry struct {
	mu      sync.RWMutex
	types   map[string]*domain.SectionType
	modules map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:   make(map[string]*domain.SectionType),
		modules: make(map[string]int),
	}
}

// NewDefaultRegistry creates a registry holding the built-in packages.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := r.loadFS(builtinPackages, "packages"); err != nil {
		return nil, fmt.Errorf("load built-in schema packages: %w", err)
	}
	return r, nil
}

// Register adds types. A type already registered under the same qualified
// name is replaced.
func (r *Registry) Register(types ...*domain.SectionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		name := t.QualifiedName()
		if _, exists := r.types[name]; !exists {
			r.modules[t.Module]++
		}
		r.types[name] = t
	}
}

// Resolve returns the type registered under name.
func (r *Registry) Resolve(name string) (*domain.SectionType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.types[name]; ok {
		return t, nil
	}

	module, member := domain.SplitQualifiedName(name)
	err := domain.ErrModuleNotFound
	if r.modules[module] > 0 {
		err = domain.ErrMemberNotFound
	}
	return nil, &domain.ResolveError{Name: name, Module: module, Member: member, Err: err}
}

// Types returns every registered type ordered by qualified name.
func (r *Registry) Types() []*domain.SectionType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.SectionType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].QualifiedName() < out[j].QualifiedName()
	})
	return out
}

// LoadDir registers every *.yaml and *.yml package in dir.
func (r *Registry) LoadDir(dir string) error {
	return r.loadFS(os.DirFS(dir), ".")
}

func (r *Registry) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		types, err := ParsePackage(data)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		r.Register(types...)
		logger.Debug("Registered %d section types from %s", len(types), e.Name())
	}
	return nil
}
