// Package history keeps a SQLite record of relink runs so earlier results
// can be listed after their log files are gone.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded run with its outcome tallies.
type Run struct {
	ID          string
	Document    string
	StartedAt   time.Time
	FinishedAt  time.Time
	DryRun      bool
	LogPath     string
	Links       int
	Counts      map[types.Outcome]int
	Diagnostics int
}

// Problems is the number of links that landed in a report bucket.
func (r Run) Problems() int {
	return r.Counts[types.OutcomeNotWorkshared] +
		r.Counts[types.OutcomeDocNotFound] +
		r.Counts[types.OutcomeLoadFailed]
}

// Store wraps the history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHistoryOpen, "failed to create %s", filepath.Dir(path))
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryOpen, "failed to open history database").
			WithDetail("path", path)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrHistoryOpen, "failed to connect to history database").
			WithDetail("path", path)
	}

	s := &Store{db: db, path: path}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger := logging.GetLogger("history")
	logger.Debug().Str("path", path).Msg("History database opened")
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return errors.Wrap(err, errors.ErrHistoryOpen, "failed to apply history schema")
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO metadata (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryOpen, "failed to store schema version")
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Record stores result and its entries in one transaction.
func (s *Store) Record(result *types.RunResult, logPath string) error {
	logger := logging.GetLogger("history")

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryWrite, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	counts := result.Counts()
	_, err = tx.Exec(`INSERT INTO runs
		(id, document, started_at, finished_at, dry_run, log_path, links,
		 up_to_date, updated, not_workshared, doc_not_found, load_failed, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.Document,
		formatTime(result.StartedAt), formatTime(result.FinishedAt),
		result.DryRun, logPath, len(result.Entries),
		counts[types.OutcomeUpToDate], counts[types.OutcomeUpdated],
		counts[types.OutcomeNotWorkshared], counts[types.OutcomeDocNotFound],
		counts[types.OutcomeLoadFailed], len(result.Diagnostics))
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryWrite, "failed to record run").
			WithDetail("run", result.ID)
	}

	stmt, err := tx.Prepare(`INSERT INTO run_links
		(run_id, position, name, folder, was_loaded, reloaded, current_revision,
		 new_revision, new_path, workshared, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryWrite, "failed to prepare link insert")
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range result.Entries {
		_, err := stmt.Exec(result.ID, i, e.Name, e.Folder, e.WasLoaded, e.Reloaded,
			e.CurrentRevision, e.NewRevision, e.NewPath, e.Workshared, string(e.Outcome), e.Error)
		if err != nil {
			return errors.Wrap(err, errors.ErrHistoryWrite, "failed to record link").
				WithDetail("run", result.ID).
				WithDetail("link", e.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrHistoryWrite, "failed to commit run")
	}

	logger.Debug().Str("run", result.ID).Int("links", len(result.Entries)).Msg("Run recorded")
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.queryRuns(`ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
}

// Get returns the run recorded under id.
func (s *Store) Get(id string) (Run, error) {
	runs, err := s.queryRuns(`WHERE id = ?`, id)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, errors.Newf(errors.ErrNotFound, "no run %s in history", id).
			WithDetail("run", id)
	}
	return runs[0], nil
}

const runColumns = `SELECT id, document, started_at, finished_at, dry_run, log_path, links,
	up_to_date, updated, not_workshared, doc_not_found, load_failed, diagnostics
	FROM runs `

func (s *Store) queryRuns(clause string, args ...interface{}) ([]Run, error) {
	rows, err := s.db.Query(runColumns+clause, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryRead, "failed to query runs")
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			r                  Run
			started, finished  string
			logPath            sql.NullString
			upToDate, updated  int
			notShared, missing int
			failed             int
		)
		if err := rows.Scan(&r.ID, &r.Document, &started, &finished, &r.DryRun, &logPath, &r.Links,
			&upToDate, &updated, &notShared, &missing, &failed, &r.Diagnostics); err != nil {
			return nil, errors.Wrap(err, errors.ErrHistoryRead, "failed to read run")
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		r.LogPath = logPath.String
		r.Counts = map[types.Outcome]int{
			types.OutcomeUpToDate:      upToDate,
			types.OutcomeUpdated:       updated,
			types.OutcomeNotWorkshared: notShared,
			types.OutcomeDocNotFound:   missing,
			types.OutcomeLoadFailed:    failed,
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryRead, "failed to read runs")
	}
	return runs, nil
}

// Entries returns the link entries of run id in processing order.
func (s *Store) Entries(id string) ([]types.LinkEntry, error) {
	rows, err := s.db.Query(`SELECT name, folder, was_loaded, reloaded, current_revision,
		new_revision, new_path, workshared, outcome, error
		FROM run_links WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryRead, "failed to query run links").
			WithDetail("run", id)
	}
	defer func() { _ = rows.Close() }()

	var entries []types.LinkEntry
	for rows.Next() {
		var (
			e                    types.LinkEntry
			folder, newPath, msg sql.NullString
			outcome              string
		)
		if err := rows.Scan(&e.Name, &folder, &e.WasLoaded, &e.Reloaded, &e.CurrentRevision,
			&e.NewRevision, &newPath, &e.Workshared, &outcome, &msg); err != nil {
			return nil, errors.Wrap(err, errors.ErrHistoryRead, "failed to read run link")
		}
		e.Folder = folder.String
		e.NewPath = newPath.String
		e.Error = msg.String
		e.Outcome = types.Outcome(outcome)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryRead, "failed to read run links")
	}
	return entries, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
