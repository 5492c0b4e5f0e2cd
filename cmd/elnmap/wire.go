package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/elnmap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/elnmap/internal/adapters/driven/labfolder"
	"github.com/custodia-labs/elnmap/internal/adapters/driven/mappingspec"
	"github.com/custodia-labs/elnmap/internal/adapters/driven/schema"
	"github.com/custodia-labs/elnmap/internal/adapters/driven/storage/archivefile"
	"github.com/custodia-labs/elnmap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/elnmap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/elnmap/internal/adapters/driving/cli"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
	"github.com/custodia-labs/elnmap/internal/core/services"
	"github.com/custodia-labs/elnmap/internal/logger"
)

// Sink names accepted by storage.sink.
const (
	SinkSQLite = "sqlite"
	SinkFile   = "file"
	SinkMemory = "memory"
)

// app is the wired application.
type app struct {
	Services cli.Services
	closers  []func() error
}

// Close releases the stores opened by wire.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// wire builds the adapters named by cfg and the services on top of them.
func wire(cfg driven.ConfigStore) (*app, error) {
	a := &app{}

	registry, err := schema.NewDefaultRegistry()
	if err != nil {
		return nil, err
	}
	for _, dir := range cfg.GetStringSlice("schema.dirs") {
		if err := registry.LoadDir(dir); err != nil {
			return nil, fmt.Errorf("load schema dir %s: %w", dir, err)
		}
		logger.Debug("Loaded schema packages from %s", dir)
	}

	loader, err := mappingspec.NewLoader(cfg.GetInt("spec.cache_size"))
	if err != nil {
		return nil, err
	}

	archives, err := a.openArchiveStore(cfg)
	if err != nil {
		return nil, err
	}

	var entries driven.EntrySource = memory.NewEntryStore()
	var watch []string
	if export := cfg.GetString("labfolder.export"); export != "" {
		entries = labfolder.NewExportSource(export)
		watch = append(watch, export)
	}

	importer := services.NewImportService(entries, loader, registry, archives)
	importer.SetDefaultUpload(cfg.GetString("import.upload"))

	a.Services = cli.Services{
		Importer:   importer,
		Archive:    services.NewArchiveService(archives),
		Schema:     services.NewSchemaService(registry),
		Config:     cfg,
		WatchPaths: watch,
	}
	return a, nil
}

func (a *app) openArchiveStore(cfg driven.ConfigStore) (driven.ArchiveStore, error) {
	sink := cfg.GetString("storage.sink")
	logger.Debug("Using %s archive store", sink)

	switch sink {
	case SinkSQLite, "":
		dir, err := dataDir(cfg, "storage.data_dir", "data")
		if err != nil {
			return nil, err
		}
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store.ArchiveStore(), nil
	case SinkFile:
		dir, err := dataDir(cfg, "storage.output_dir", "archives")
		if err != nil {
			return nil, err
		}
		store, err := archivefile.NewStore(dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case SinkMemory:
		return memory.NewArchiveStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage.sink %q (use %s, %s or %s)", sink, SinkSQLite, SinkFile, SinkMemory)
	}
}

// dataDir returns the configured directory or <elnmap home>/<fallback>.
func dataDir(cfg driven.ConfigStore, key, fallback string) (string, error) {
	if dir := cfg.GetString(key); dir != "" {
		return expandHome(dir)
	}
	home, err := file.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}

func expandHome(dir string) (string, error) {
	if dir != "~" && !hasHomePrefix(dir) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dir[1:]), nil
}

func hasHomePrefix(dir string) bool {
	return len(dir) > 1 && dir[0] == '~' && (dir[1] == '/' || dir[1] == filepath.Separator)
}
