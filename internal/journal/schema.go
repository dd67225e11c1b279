package journal

// Schema DDL and statements for the run journal.
const (
	createRuns = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    destination TEXT NOT NULL,
    clean INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    copied INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    failed INTEGER NOT NULL
);`

	insertRun = `INSERT INTO runs
    (run_id, source, destination, clean, started_at, finished_at, copied, skipped, failed)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

	selectRuns = `SELECT run_id, source, destination, clean, started_at, finished_at,
    copied, skipped, failed
    FROM runs ORDER BY started_at DESC`
)
