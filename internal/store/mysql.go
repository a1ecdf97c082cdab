package store

import (
	"context"
	"embed"
	"fmt"
	"time"

	"log/slog"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/vendora/vendora-manager/internal/dependency"
)

//go:embed migrations
var migrationFS embed.FS

// Config defines configurations to connect database
type Config struct {
	DSN                string `mapstructure:"dsn"`
	Automigrate        bool   `mapstructure:"automigrate"`
	MaxOpenConnections int    `mapstructure:"max_open_connections"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections"`
}

// MYSQLStore implements methods to access MYSQL database
type MYSQLStore struct {
	db dependency.DB
}

// New connects to the database, applies migrations and returns a new
// MYSQLStore object.
func New(ctx context.Context, cfg Config) (*MYSQLStore, error) {
	d, err := sqlx.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("couldn't open database: %v", err)
	}

	if cfg.MaxOpenConnections > 0 {
		d.SetMaxOpenConns(cfg.MaxOpenConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		d.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	d.SetConnMaxLifetime(2 * time.Minute)
	d.SetConnMaxIdleTime(30 * time.Second)

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := d.PingContext(pingCtx); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Automigrate {
		slog.Default().InfoContext(ctx, "applying migrations")
		src := &migrate.EmbedFileSystemMigrationSource{
			FileSystem: migrationFS,
			Root:       "migrations",
		}
		n, err := migrate.Exec(d.Unsafe().DB, "mysql", src, migrate.Up)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		slog.Default().InfoContext(ctx, "migrations applied", "count", n)
	}

	return &MYSQLStore{db: d}, nil
}

func (ms *MYSQLStore) DB() dependency.DB {
	return ms.db
}

// Now returns the store clock; analytics uses it for date-range defaults.
func (ms *MYSQLStore) Now() time.Time {
	return time.Now()
}

func (ms *MYSQLStore) Close() {
	if d, ok := ms.db.(*sqlx.DB); ok {
		d.Close()
	}
}
