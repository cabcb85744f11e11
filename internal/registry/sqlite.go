package registry

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteRegistry loads terrain rows from a sqlite file once at startup
// and serves them from memory. The registry is immutable after load.
type SQLiteRegistry struct {
	entries map[string]Terrain
}

func NewSQLiteRegistry(path string) (*SQLiteRegistry, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	entries, err := loadAll(db)
	if err != nil {
		return nil, fmt.Errorf("error loading terrain rows: %w", err)
	}

	return &SQLiteRegistry{entries: entries}, nil
}

func migrate(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS terrain (
			area_id TEXT PRIMARY KEY,
			elevation REAL NOT NULL,
			slope REAL NOT NULL,
			aspect TEXT NOT NULL,
			vegetation TEXT NOT NULL,
			base_risk REAL NOT NULL
		);
  	`

	_, err := db.Exec(schema)
	return err
}

func loadAll(db *sql.DB) (map[string]Terrain, error) {
	rows, err := db.Query(`SELECT area_id, elevation, slope, aspect, vegetation, base_risk FROM terrain`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]Terrain)
	for rows.Next() {
		var id string
		var t Terrain
		if err := rows.Scan(&id, &t.Elevation, &t.Slope, &t.Aspect, &t.Vegetation, &t.BaseRisk); err != nil {
			return nil, err
		}
		entries[normalizeID(id)] = t
	}

	return entries, rows.Err()
}

func (r *SQLiteRegistry) Lookup(areaID string) Terrain {
	if t, ok := r.entries[normalizeID(areaID)]; ok {
		return t
	}
	return DefaultTerrain
}

// Len reports the number of loaded rows, mostly for startup logging.
func (r *SQLiteRegistry) Len() int {
	return len(r.entries)
}
