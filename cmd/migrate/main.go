package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/angelmondragon/sweetshop-backend/pkg/config"
	"github.com/angelmondragon/sweetshop-backend/pkg/db"
	"github.com/angelmondragon/sweetshop-backend/pkg/logger"
	"github.com/angelmondragon/sweetshop-backend/pkg/migrate"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations base directory (per-driver subdirectories)")
	embedded := flag.Bool("embedded", false, "use the migrations compiled into the binary instead of -dir")

	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")

	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	driverDir := migrate.DirFor(*dir, cfg.DB.Driver)
	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    *cmd,
		"driver": cfg.DB.Driver,
		"dir":    driverDir,
	})

	// Commands that do NOT require DB
	switch *cmd {
	case "create":
		if *name == "" {
			fmt.Fprintln(os.Stderr, "missing -name for create")
			os.Exit(1)
		}
		path, err := migrate.CreateSQLMigration(driverDir, *name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create migration: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("created migration:", path)
		return

	case "validate":
		for _, driver := range []string{config.DBDriverPostgres, config.DBDriverSQLite} {
			if err := migrate.ValidateDir(migrate.DirFor(*dir, driver)); err != nil {
				fmt.Fprintf(os.Stderr, "%s migration validation failed: %v\n", driver, err)
				os.Exit(1)
			}
		}
		fmt.Println("migration validation passed")
		return
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.SQLDB()
	requireResource(ctx, logg, "sql database", err)

	logg.Info(ctx, "migrate ready")

	run := func(command string) error {
		if *embedded {
			return migrate.RunEmbedded(ctx, sqlDB, dbClient.Driver(), command)
		}
		return migrate.Run(ctx, sqlDB, dbClient.Driver(), driverDir, command)
	}

	switch *cmd {
	case "up", "down", "status":
		if err := run(*cmd); err != nil {
			fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
			os.Exit(1)
		}

	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		if err := migrateToVersion(ctx, sqlDB, dbClient.Driver(), driverDir, *version, *embedded); err != nil {
			fmt.Fprintf(os.Stderr, "goose version migrate failed: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func migrateToVersion(ctx context.Context, sqlDB *sql.DB, driver, dir, version string, embedded bool) error {
	if embedded {
		return fmt.Errorf("-cmd=version requires on-disk migrations; drop -embedded")
	}
	return migrate.MigrateToVersion(ctx, sqlDB, driver, dir, version)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
