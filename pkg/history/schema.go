package history

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT
);

CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    document TEXT NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    dry_run INTEGER DEFAULT 0,
    log_path TEXT,
    links INTEGER DEFAULT 0,
    up_to_date INTEGER DEFAULT 0,
    updated INTEGER DEFAULT 0,
    not_workshared INTEGER DEFAULT 0,
    doc_not_found INTEGER DEFAULT 0,
    load_failed INTEGER DEFAULT 0,
    diagnostics INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

CREATE TABLE IF NOT EXISTS run_links (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    folder TEXT,
    was_loaded INTEGER DEFAULT 0,
    reloaded INTEGER DEFAULT 0,
    current_revision INTEGER DEFAULT 0,
    new_revision INTEGER DEFAULT 0,
    new_path TEXT,
    workshared INTEGER DEFAULT 0,
    outcome TEXT NOT NULL,
    error TEXT,
    PRIMARY KEY (run_id, position)
);
`
