// Package cli provides the cobra command tree of the elnmap binary.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
	"github.com/custodia-labs/elnmap/internal/core/ports/driving"
	"github.com/custodia-labs/elnmap/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

var verbose bool

// Services wired by main. Commands report "not configured" when theirs is nil.
var (
	importer       driving.Importer
	archiveService driving.ArchiveService
	schemaService  driving.SchemaService
	configStore    driven.ConfigStore

	// watchPaths are extra files whose changes re-run `import --watch`.
	watchPaths []string
)

// Services holds the driving ports and stores the commands use.
type Services struct {
	Importer driving.Importer
	Archive  driving.ArchiveService
	Schema   driving.SchemaService
	Config   driven.ConfigStore

	// WatchPaths lists source files, e.g. the entry export, watched in
	// addition to the mapping file.
	WatchPaths []string
}

// SetServices installs the services used by all commands.
func SetServices(s Services) {
	importer = s.Importer
	archiveService = s.Archive
	schemaService = s.Schema
	configStore = s.Config
	watchPaths = s.WatchPaths
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "elnmap",
	Short: "Map lab notebook entries into structured archives",
	Long: `elnmap maps electronic lab notebook entries onto typed sections.

A mapping file (.json or .yaml) declares which classes to build, which entry
tag selects the root class, and where each data, text and table value goes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose || (configStore != nil && configStore.GetBool("log.verbose")))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
