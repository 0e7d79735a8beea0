package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/galamath/galamath/internal/logger"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DB struct {
	*sql.DB
	driver string
	log    *logger.Logger
}

// Open connects to the configured database and applies pending migrations.
// For sqlite, dsn is a file path or ":memory:"; for postgres, a connection URL.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	log := logger.Default().WithPrefix("db")

	var (
		sqlDB *sql.DB
		err   error
	)
	switch driver {
	case DriverSQLite:
		log.Info("opening sqlite database: %s", dsn)
		sqlDB, err = sql.Open("sqlite3", sqliteDSN(dsn))
		if err == nil {
			sqlDB.SetMaxOpenConns(1) // single writer; also keeps :memory: on one connection
		}
	case DriverPostgres:
		log.Info("opening postgres database")
		sqlDB, err = sql.Open("pgx", dsn)
		if err == nil {
			sqlDB.SetMaxOpenConns(20)
			sqlDB.SetMaxIdleConns(5)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}

	db := &DB{DB: sqlDB, driver: driver, log: log}

	if err := db.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		log.Error("failed to ping database: %v", err)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Debug("applying migrations")
	if err := db.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		log.Error("failed to apply migrations: %v", err)
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL"
}

// Driver reports which dialect the connection speaks.
func (db *DB) Driver() string {
	return db.driver
}

// Builder returns a squirrel builder with the dialect's placeholder format.
func (db *DB) Builder() squirrel.StatementBuilderType {
	if db.driver == DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// Migrate applies every embedded migration for the dialect that has not run yet.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	dir := "migrations/" + db.driver
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		version := entry.Name()
		applied, err := db.isMigrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			db.log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile(dir + "/" + version)
		if err != nil {
			return err
		}
		db.log.Info("applying migration: %s", version)
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			db.log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		query, args, err := db.Builder().Insert("schema_migrations").Columns("version").Values(version).ToSql()
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		db.log.Info("migration %s applied successfully", version)
	}
	return nil
}

func (db *DB) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := db.Builder().Select("version").From("schema_migrations").Where(squirrel.Eq{"version": version}).ToSql()
	if err != nil {
		return false, err
	}
	var v string
	err = db.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
