package report

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/FNNDSC/ep-subdivide-mnc-methods/internal/models"
	"github.com/FNNDSC/ep-subdivide-mnc-methods/pkg/voldiff"
)

// Store is a sqlite index of voxel-difference records, one row per candidate
// volume. Runs append to it, so the store accumulates history across
// invocations on the same output directory.
type Store struct {
	db *sql.DB
}

// OpenStore opens the record store at path, creating the schema when needed.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS voxel_counts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		method TEXT NOT NULL,
		additions INTEGER NOT NULL,
		deletions INTEGER NOT NULL,
		total INTEGER NOT NULL,
		change INTEGER NOT NULL,
		count_changes INTEGER NOT NULL,
		percent_change REAL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_voxel_counts_method ON voxel_counts(method);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating record store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Insert appends one record. An undefined percent_change is stored as NULL.
func (s *Store) Insert(d voldiff.Diff) error {
	percent := sql.NullFloat64{Float64: d.PercentChange()}
	percent.Valid = !math.IsNaN(percent.Float64)

	_, err := s.db.Exec(`
	INSERT INTO voxel_counts
		(path, method, additions, deletions, total, change, count_changes, percent_change, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Path, string(d.Method), d.Additions, d.Deletions, d.Total,
		d.Change(), d.CountChanges(), percent, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("inserting record for %s: %w", d.Path, err)
	}
	return nil
}

// CountByMethod reports how many records each method has accumulated.
func (s *Store) CountByMethod() (map[models.Method]int, error) {
	rows, err := s.db.Query(`SELECT method, COUNT(*) FROM voxel_counts GROUP BY method`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.Method]int)
	for rows.Next() {
		var method string
		var n int
		if err := rows.Scan(&method, &n); err != nil {
			return nil, err
		}
		counts[models.Method(method)] = n
	}
	return counts, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
