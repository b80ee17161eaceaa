// Package backend opens the vendor storage selected by configuration and
// wires it into a core.Store and core.Service.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JonMunkholm/vendors/internal/config"
	"github.com/JonMunkholm/vendors/internal/core"
	"github.com/JonMunkholm/vendors/internal/fileio"
	"github.com/JonMunkholm/vendors/internal/pgstore"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Backend holds the opened storage. Pool and Rows are nil for the file backend.
type Backend struct {
	Store *core.Store
	Pool  *pgxpool.Pool
	Rows  *pgstore.Store

	// Info describes where vendors are read from and written to.
	Info []string
}

// Open builds the store for cfg.Store.Backend. For postgres it connects,
// pings and ensures the schema exists.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	storeOpts := []core.StoreOption{
		core.WithDecodePolicy(core.DecodePolicy(cfg.Store.DecodePolicy)),
		core.WithLogger(logger),
	}

	switch cfg.Store.Backend {
	case config.BackendFile:
		return &Backend{
			Store: core.NewStore(
				fileio.Source{Path: cfg.Store.InputPath},
				fileio.NewSink(cfg.Store.OutputPath),
				storeOpts...,
			),
			Info: []string{
				"backend: file",
				"input:   " + cfg.Store.InputPath,
				"output:  " + cfg.Store.OutputPath,
			},
		}, nil

	case config.BackendPostgres:
		pool, err := OpenPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}

		rows := pgstore.New(pool)
		if err := rows.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}

		logger.Info("connected to database", "name", databaseName(cfg.Database.URL))

		return &Backend{
			Store: core.NewStore(rows, rows, storeOpts...),
			Pool:  pool,
			Rows:  rows,
			Info: []string{
				"backend:  postgres",
				"database: " + databaseName(cfg.Database.URL),
				"input:    table " + pgstore.InputTable,
				"output:   table " + pgstore.SavedTable,
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown backend %q", cfg.Store.Backend)
}

// OpenPool parses the database URL, applies pool limits and verifies the
// connection.
func OpenPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Close releases the database pool, if any.
func (b *Backend) Close() {
	if b.Pool != nil {
		b.Pool.Close()
	}
}

// NewService wraps the backend store in a service configured from cfg.
func (b *Backend) NewService(cfg *config.Config, opts ...core.ServiceOption) *core.Service {
	if cfg.Store.NormalizeRegions {
		opts = append([]core.ServiceOption{core.WithRegionNormalizer(core.NormalizeRegion)}, opts...)
	}
	return core.NewService(b.Store, opts...)
}

func databaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
