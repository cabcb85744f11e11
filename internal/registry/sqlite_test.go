package registry

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func seedDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "terrain.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE terrain (
			area_id TEXT PRIMARY KEY,
			elevation REAL NOT NULL,
			slope REAL NOT NULL,
			aspect TEXT NOT NULL,
			vegetation TEXT NOT NULL,
			base_risk REAL NOT NULL
		);
		INSERT INTO terrain VALUES
			('paradise', 1800, 25, 'south', 'forest', 0.95),
			('Big Sur', 350, 40, 'west', 'forest', 0.80);
	`)
	require.NoError(t, err)
	return path
}

func TestSQLiteRegistryLookup(t *testing.T) {
	r, err := NewSQLiteRegistry(seedDB(t))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	paradise := r.Lookup("paradise")
	assert.Equal(t, 1800.0, paradise.Elevation)
	assert.Equal(t, 25.0, paradise.Slope)
	assert.Equal(t, "forest", paradise.Vegetation)
	assert.Equal(t, 0.95, paradise.BaseRisk)

	// Row keys are normalized at load, so display-style lookups match.
	assert.Equal(t, r.Lookup("big_sur"), r.Lookup("Big Sur"))
	assert.Equal(t, 40.0, r.Lookup("big_sur").Slope)
}

func TestSQLiteRegistryUnknownArea(t *testing.T) {
	r, err := NewSQLiteRegistry(seedDB(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultTerrain, r.Lookup("atlantis"))
}

func TestSQLiteRegistryEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")

	r, err := NewSQLiteRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, DefaultTerrain, r.Lookup("anywhere"))
}
