// Package storage provides SQLite-based persistence for run summaries.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/schelling/internal/schelling"
)

// ErrRunNotFound is returned by RunByID when no run has the given ID.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run history.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Run is the summary of one finished simulation run.
// Only the outcome is recorded, never the grid itself.
type Run struct {
	ID          string    `db:"uuid"`
	Scenario    string    `db:"scenario"`
	Seed        int64     `db:"seed"`
	Locations   int       `db:"locations"`
	Threshold   float64   `db:"threshold"`
	DistA       float64   `db:"dist_a"`
	DistB       float64   `db:"dist_b"`
	DistEmpty   float64   `db:"dist_empty"`
	Ticks       uint64    `db:"ticks"`
	Settled     bool      `db:"settled"`
	Similarity  float64   `db:"similarity"`
	CreatedAt   time.Time `db:"-"`
	CreatedUnix int64     `db:"created_at"`
}

// NewRun builds a run summary from the parameters a simulation was started
// with and its final statistics.
func NewRun(scenario string, p schelling.Params, st schelling.Stats) Run {
	return Run{
		Scenario:   scenario,
		Seed:       p.Seed,
		Locations:  p.Locations,
		Threshold:  p.Threshold,
		DistA:      p.Distribution.A,
		DistB:      p.Distribution.B,
		DistEmpty:  p.Distribution.Empty,
		Ticks:      st.Tick,
		Settled:    st.Settled,
		Similarity: st.Similarity,
	}
}

// ScenarioSummary aggregates all stored runs of one scenario.
type ScenarioSummary struct {
	Scenario       string  `db:"scenario"`
	Runs           int     `db:"runs"`
	Settled        int     `db:"settled"`
	AvgTicks       float64 `db:"avg_ticks"`
	AvgSimilarity  float64 `db:"avg_similarity"`
	BestSimilarity float64 `db:"best_similarity"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid TEXT NOT NULL UNIQUE,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			locations INTEGER NOT NULL,
			threshold REAL NOT NULL,
			dist_a REAL NOT NULL,
			dist_b REAL NOT NULL,
			dist_empty REAL NOT NULL,
			ticks INTEGER NOT NULL,
			settled INTEGER NOT NULL,
			similarity REAL NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run summary. An empty ID gets a fresh UUID and a zero
// CreatedAt is set to now. Returns the stored run.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	run.CreatedUnix = run.CreatedAt.UnixNano()

	_, err := s.db.NamedExec(
		`INSERT INTO runs
		 (uuid, scenario, seed, locations, threshold, dist_a, dist_b, dist_empty, ticks, settled, similarity, created_at)
		 VALUES (:uuid, :scenario, :seed, :locations, :threshold, :dist_a, :dist_b, :dist_empty, :ticks, :settled, :similarity, :created_at)`,
		run,
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run, nil
}

const runColumns = `uuid, scenario, seed, locations, threshold, dist_a, dist_b, dist_empty,
		        ticks, settled, similarity, created_at`

// RecentRuns retrieves the most recent runs across all scenarios.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.Select(&runs,
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}

	return withTimes(runs), nil
}

// RunsByScenario retrieves the most recent runs of one scenario.
func (s *Store) RunsByScenario(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.Select(&runs,
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}

	return withTimes(runs), nil
}

// RunByID retrieves a run by its UUID.
// Returns ErrRunNotFound if it does not exist.
func (s *Store) RunByID(id string) (Run, error) {
	var run Run
	err := s.db.Get(&run, `SELECT `+runColumns+` FROM runs WHERE uuid = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}

	run.CreatedAt = time.Unix(0, run.CreatedUnix)
	return run, nil
}

// ScenarioStats aggregates stored runs per scenario, sorted by scenario ID.
func (s *Store) ScenarioStats() ([]ScenarioSummary, error) {
	var stats []ScenarioSummary
	err := s.db.Select(&stats,
		`SELECT scenario,
		        COUNT(*) AS runs,
		        SUM(settled) AS settled,
		        AVG(ticks) AS avg_ticks,
		        AVG(similarity) AS avg_similarity,
		        MAX(similarity) AS best_similarity
		 FROM runs
		 GROUP BY scenario
		 ORDER BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scenario stats: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes all runs of a scenario, or every run if scenario is empty.
// Returns the number of deleted rows.
func (s *Store) ClearRuns(scenario string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if scenario == "" {
		res, err = s.db.Exec("DELETE FROM runs")
	} else {
		res, err = s.db.Exec("DELETE FROM runs WHERE scenario = ?", scenario)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted runs: %w", err)
	}
	return n, nil
}

func withTimes(runs []Run) []Run {
	for i := range runs {
		runs[i].CreatedAt = time.Unix(0, runs[i].CreatedUnix)
	}
	return runs
}
