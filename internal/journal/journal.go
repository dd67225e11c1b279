// Package journal persists a record of every mirror run in a SQLite
// database under the data directory, so operators can audit what was
// shadow-copied where and when.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shadowcopy/pkg/mirror"
)

const dbFileName = "journal.db"

// Run is one recorded mirror run.
type Run struct {
	ID          string
	Source      string
	Destination string
	Clean       bool
	StartedAt   time.Time
	FinishedAt  time.Time
	Copied      int
	Skipped     int
	Failed      int
}

// Journal records mirror runs.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database in dataDir.
func Open(dataDir string) (*Journal, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(createRuns); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database handle. Idempotent.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// NewRun builds a Run for a mirror invocation with a fresh id and the start
// time set to now.
func NewRun(source, destination string, clean bool) Run {
	return Run{
		ID:          uuid.NewString(),
		Source:      source,
		Destination: destination,
		Clean:       clean,
		StartedAt:   time.Now().UTC(),
	}
}

// Record stores a finished run. The caller fills the stats and the finish
// time; a zero FinishedAt is stamped with now.
func (j *Journal) Record(run Run, st mirror.Stats) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	_, err := j.db.Exec(insertRun,
		run.ID,
		run.Source,
		run.Destination,
		boolInt(run.Clean),
		run.StartedAt.Format(time.RFC3339Nano),
		run.FinishedAt.Format(time.RFC3339Nano),
		st.FilesCopied,
		st.FilesSkipped,
		st.FilesFailed,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Runs returns recorded runs, most recent first, capped at limit
// (0 means no cap).
func (j *Journal) Runs(limit int) ([]Run, error) {
	query := selectRuns
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			clean             int
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.Destination, &clean,
			&started, &finished, &r.Copied, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Clean = clean != 0
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
