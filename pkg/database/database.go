// Package database provides PostgreSQL connection management with lifecycle coordination.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/iris/pkg/lifecycle"
)

// System manages database connections and lifecycle coordination.
type System interface {
	Connection() *sql.DB
	// Start registers the ping (and optional migrate) startup hook and the
	// close-on-shutdown hook.
	Start(lc *lifecycle.Coordinator) error
}

type Option func(*database)

// WithMigrations supplies the files applied at startup when auto_migrate is set.
func WithMigrations(src fs.FS) Option {
	return func(d *database) { d.migrations = src }
}

type database struct {
	pool   *sql.DB
	logger *slog.Logger

	pingTimeout time.Duration
	url         string
	autoMigrate bool
	migrations  fs.FS
}

// New opens the pgx pool without connecting.
func New(cfg *Config, logger *slog.Logger, opts ...Option) (System, error) {
	pool, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	d := &database{
		pool:        pool,
		logger:      logger.With("system", "database", "host", cfg.Host, "name", cfg.Name),
		pingTimeout: cfg.ConnTimeoutDuration(),
		url:         cfg.URL(),
		autoMigrate: cfg.AutoMigrate,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *database) Connection() *sql.DB {
	return d.pool
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() error {
		if err := d.ping(lc.Context()); err != nil {
			return err
		}
		return d.migrate()
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.close()
	})

	return nil
}

func (d *database) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.pingTimeout)
	defer cancel()

	if err := d.pool.PingContext(ctx); err != nil {
		d.logger.Error("database unreachable", "error", err)
		return fmt.Errorf("ping database: %w", err)
	}
	d.logger.Info("database connected")
	return nil
}

func (d *database) migrate() error {
	if !d.autoMigrate || d.migrations == nil {
		return nil
	}
	if err := Migrate(d.migrations, d.url, d.logger); err != nil {
		d.logger.Error("auto migration failed", "error", err)
		return err
	}
	return nil
}

func (d *database) close() {
	if err := d.pool.Close(); err != nil {
		d.logger.Error("database close failed", "error", err)
		return
	}
	d.logger.Info("database connection closed")
}
