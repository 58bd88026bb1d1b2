package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/angelmondragon/sweetshop-backend/pkg/config"
	"github.com/pressly/goose/v3"
)

const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedded embed.FS

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// Dialect maps a config driver name onto the goose dialect.
func Dialect(driver string) (string, error) {
	switch driver {
	case config.DBDriverPostgres, "":
		return "postgres", nil
	case config.DBDriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", driver)
	}
}

// DirFor returns the per-driver migrations directory under base.
func DirFor(base, driver string) string {
	if driver == "" {
		driver = config.DBDriverPostgres
	}
	return filepath.Join(base, driver)
}

// Run executes a standard goose command against an on-disk migrations dir.
func Run(ctx context.Context, db *sql.DB, driver, dir, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	return run(ctx, nil, db, driver, dir, command, args...)
}

// RunEmbedded executes a goose command using the migrations compiled into
// the binary.
func RunEmbedded(ctx context.Context, db *sql.DB, driver, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if driver == "" {
		driver = config.DBDriverPostgres
	}
	return run(ctx, embedded, db, driver, path.Join("migrations", driver), command, args...)
}

// EmbeddedFS exposes the compiled-in migrations, rooted at "migrations".
func EmbeddedFS() (fs.FS, error) {
	return fs.Sub(embedded, "migrations")
}

func run(ctx context.Context, fsys fs.FS, db *sql.DB, driver, dir, command string, args ...string) error {
	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver, dir, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
		return nil
	default:
		if err := goose.DownToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
		return nil
	}
}
