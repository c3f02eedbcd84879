// Command migrate manages the posts schema: SQL migrations for PostgreSQL,
// AutoMigrate for local SQLite databases.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"strings"

	"simplepost/internal/config"
	"simplepost/internal/database"
	"simplepost/internal/middleware"

	"gorm.io/gorm"
)

const usage = "usage: migrate <up|auto|status|down VERSION>"

func main() {
	flag.Parse()
	if err := run(context.Background(), flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	middleware.ConfigureLogger(cfg.LogFormat, cfg.LogLevel)

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	return dispatch(ctx, db, cfg, args)
}

func dispatch(ctx context.Context, db *gorm.DB, cfg *config.Config, args []string) error {
	logger := middleware.Logger

	switch strings.ToLower(args[0]) {
	case "up":
		if cfg.DBDriver == config.DriverSQLite {
			return errors.New(`SQL migrations target PostgreSQL; use "auto" with DB_DRIVER=sqlite`)
		}
		if err := database.RunMigrations(ctx, db); err != nil {
			return err
		}
		logger.Info("SQL migrations up to date")

	case "auto":
		cfg.DBSchemaMode = database.SchemaModeAuto
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return err
		}
		logger.Info("AutoMigrate complete")

	case "status":
		st, err := database.GetSchemaStatus(ctx, db, cfg)
		if err != nil {
			return err
		}
		logger.Info("Schema status",
			slog.String("mode", st.Mode),
			slog.String("env", st.Environment),
			slog.Bool("run_sql", st.WillRunSQL),
			slog.Bool("run_auto", st.WillRunAutoMigrate),
			slog.Any("applied", st.AppliedVersions),
			slog.Int("pending", len(st.PendingMigrations)),
		)
		for _, m := range st.PendingMigrations {
			logger.Info("Pending migration", slog.String("migration", m.String()))
		}

	case "down":
		if len(args) < 2 {
			return errors.New(usage)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		return database.RollbackMigration(ctx, db, version)

	default:
		return errors.New(usage)
	}
	return nil
}
