// Command elnmap maps electronic lab notebook entries into archives.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/elnmap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/elnmap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/elnmap/internal/adapters/driving/cli"
	"github.com/custodia-labs/elnmap/internal/core/ports/driven"
	"github.com/custodia-labs/elnmap/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	app, err := wire(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	cli.SetVersion(version)
	cli.SetServices(app.Services)
	return cli.Execute(ctx)
}

// loadConfig opens config.toml. An unreadable file is reported and the
// defaults are used instead so read-only commands keep working.
func loadConfig() driven.ConfigStore {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("Could not load config, using defaults: %v", err)
		return memory.NewConfigStore(file.Defaults)
	}
	return cfg
}
