package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarapi/internal/app"
	"solarapi/internal/bodies"
	"solarapi/pkg/models"
	"solarapi/pkg/utils"
)

func openSQLite(t *testing.T, path string) *app.Backend {
	t.Helper()
	cfg := utils.DefaultConfig().Store
	cfg.Driver = utils.StoreSQLite
	cfg.SQLitePath = path

	b, err := app.OpenBackend(context.Background(), cfg)
	require.NoError(t, err)
	return b
}

func TestSaveAndClose(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bodies.db")

	b := openSQLite(t, path)
	n, err := saveAndClose(ctx, b, []models.CelestialBody{{ID: "terre", IsPlanet: true}, {ID: "lune"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Error(t, b.Store.Ping(ctx))

	reopened := openSQLite(t, path)
	defer reopened.Close(ctx)
	out, err := reopened.Store.FindAll(ctx, bodies.Filter{})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestSaveAndCloseClosesOnError(t *testing.T) {
	ctx := context.Background()
	b := openSQLite(t, filepath.Join(t.TempDir(), "bodies.db"))

	_, err := saveAndClose(ctx, b, []models.CelestialBody{{ID: "terre"}, {Name: "sans id"}})
	require.Error(t, err)
	assert.Error(t, b.Store.Ping(ctx))
}
