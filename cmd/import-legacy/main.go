// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/carterperez-dev/cms-blog/internal/config"
	"github.com/carterperez-dev/cms-blog/internal/core"
	"github.com/carterperez-dev/cms-blog/internal/legacy"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrate := flag.Bool("migrate", true, "apply schema migrations before importing")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	if err := run(*configPath, *migrate); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, migrate bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		configPath = ""
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Legacy.MongoURI == "" {
		return errors.New("LEGACY_MONGO_URI is not set")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	source, err := legacy.OpenMongo(ctx, cfg.Legacy.MongoURI, cfg.Legacy.Database)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := source.Close(closeCtx); err != nil {
			logger.Error("failed to disconnect mongo", "error", err)
		}
	}()

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if migrate {
		if err := core.Migrate(ctx, db.DB); err != nil {
			return err
		}
	}

	started := time.Now()
	rep, err := legacy.NewImporter(source, legacy.NewPostgresSink(db.DB), logger).Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("import complete",
		"duration", time.Since(started).String(),
		"report", rep,
	)
	return nil
}
