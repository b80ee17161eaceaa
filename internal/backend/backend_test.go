package backend

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonMunkholm/vendors/internal/config"
	"github.com/JonMunkholm/vendors/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileConfig(dir string) *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			Backend:          config.BackendFile,
			InputPath:        filepath.Join(dir, "vendors.csv"),
			OutputPath:       filepath.Join(dir, "out.csv"),
			DecodePolicy:     string(core.DecodeSkip),
			InputDatePattern: string(core.PatternDaySlash),
			NormalizeRegions: true,
		},
	}
}

func TestOpen_FileBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := fileConfig(dir)
	require.NoError(t, os.WriteFile(cfg.Store.InputPath,
		[]byte("1,Jane,07/25/1984,TX\n2,Bad,02/31/1984,TX\n"), 0o644))

	b, err := Open(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer b.Close()

	assert.Nil(t, b.Pool)
	assert.Nil(t, b.Rows)
	assert.Contains(t, b.Info, "input:   "+cfg.Store.InputPath)

	svc := b.NewService(cfg)

	// Skip policy drops the impossible date.
	set, err := svc.Vendors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	v := core.Vendor{ID: 3, Name: "Ann", BirthDate: core.Date{Year: 1990, Month: time.March, Day: 4}, Region: "california"}
	require.NoError(t, svc.Save(context.Background(), v))

	data, err := os.ReadFile(cfg.Store.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "3,Ann,04/03/1990,CA\n", string(data))
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := fileConfig(t.TempDir())
	cfg.Store.Backend = "s3"

	_, err := Open(context.Background(), cfg, slog.Default())
	assert.ErrorContains(t, err, `unknown backend "s3"`)
}

func TestOpenPool_BadURL(t *testing.T) {
	_, err := OpenPool(context.Background(), config.DatabaseConfig{URL: "://not a url", MaxConns: 1})
	assert.ErrorContains(t, err, "parse database URL")
}

func TestDatabaseName(t *testing.T) {
	assert.Equal(t, "vendors", databaseName("postgres://user:pw@localhost:5432/vendors?sslmode=disable"))
	assert.Equal(t, "", databaseName("://bad"))
}
