// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records rendered digests in SQLite and answers the
// diagnostics queries behind `digest-engine history`: tag distribution per
// section, duplicate titles and card counts per section.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// ErrNoRun is returned when no run was recorded for the requested date.
var ErrNoRun = errors.New("no recorded run for date")

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at path, creating the
// parent directory and schema when missing.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			report_date TEXT NOT NULL,
			created_at TEXT NOT NULL,
			duplicates INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_date ON runs(report_date)`,
		`CREATE TABLE IF NOT EXISTS run_sources (
			run_id TEXT NOT NULL REFERENCES runs(id),
			source TEXT NOT NULL,
			count INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			section TEXT NOT NULL,
			source TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			score INTEGER NOT NULL,
			tags TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_run ON items(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one run and every item of d, returning the run identifier.
func (s *Store) Record(ctx context.Context, d *types.Digest) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	created := d.GeneratedAt
	if created.IsZero() {
		created = time.Now()
	}

	if err := exec(ctx, tx, sq.Insert("runs").
		Columns("id", "report_date", "created_at", "duplicates").
		Values(runID, d.Date, created.UTC().Format(time.RFC3339), d.Duplicates)); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, src := range d.Sources {
		var srcErr any
		if src.Error != "" {
			srcErr = src.Error
		}
		if err := exec(ctx, tx, sq.Insert("run_sources").
			Columns("run_id", "source", "count", "error").
			Values(runID, string(src.Source), src.Count, srcErr)); err != nil {
			return "", fmt.Errorf("inserting source %s: %w", src.Source, err)
		}
	}

	for _, sec := range d.Sections {
		for _, it := range sec.Items {
			tags := it.Tags
			if tags == nil {
				tags = []string{}
			}
			tagsJSON, err := json.Marshal(tags)
			if err != nil {
				return "", fmt.Errorf("encoding tags: %w", err)
			}
			if err := exec(ctx, tx, sq.Insert("items").
				Columns("run_id", "section", "source", "url", "title", "score", "tags").
				Values(runID, string(sec.Key), string(it.Source), it.URL, it.Title, it.Score, string(tagsJSON))); err != nil {
				return "", fmt.Errorf("inserting item %s: %w", it.URL, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

func exec(ctx context.Context, tx *sql.Tx, b sq.InsertBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// latestRun returns the most recent run recorded for date.
func (s *Store) latestRun(ctx context.Context, date string) (string, error) {
	query, args, err := sq.Select("id").From("runs").
		Where(sq.Eq{"report_date": date}).
		OrderBy("seq DESC").Limit(1).ToSql()
	if err != nil {
		return "", fmt.Errorf("building query: %w", err)
	}

	var id string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", date, ErrNoRun)
	}
	if err != nil {
		return "", fmt.Errorf("looking up run: %w", err)
	}
	return id, nil
}

// SectionCounts returns the number of items per section in the latest run
// for date.
func (s *Store) SectionCounts(ctx context.Context, date string) (map[types.SectionKey]int, error) {
	runID, err := s.latestRun(ctx, date)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Select("section", "count(*)").From("items").
		Where(sq.Eq{"run_id": runID}).GroupBy("section").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying section counts: %w", err)
	}
	defer rows.Close()

	out := make(map[types.SectionKey]int)
	for rows.Next() {
		var section string
		var n int
		if err := rows.Scan(&section, &n); err != nil {
			return nil, fmt.Errorf("scanning section count: %w", err)
		}
		out[types.SectionKey(section)] = n
	}
	return out, rows.Err()
}

// TagDistribution returns tag → section → count for the latest run for
// date. Untagged items count under the empty tag.
func (s *Store) TagDistribution(ctx context.Context, date string) (map[string]map[types.SectionKey]int, error) {
	runID, err := s.latestRun(ctx, date)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Select("section", "tags").From("items").
		Where(sq.Eq{"run_id": runID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[types.SectionKey]int)
	add := func(tag string, section types.SectionKey) {
		if out[tag] == nil {
			out[tag] = make(map[types.SectionKey]int)
		}
		out[tag][section]++
	}

	for rows.Next() {
		var section string
		var raw sql.NullString
		if err := rows.Scan(&section, &raw); err != nil {
			return nil, fmt.Errorf("scanning tags: %w", err)
		}
		var tags []string
		if raw.Valid && raw.String != "" {
			if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
				return nil, fmt.Errorf("decoding tags: %w", err)
			}
		}
		if len(tags) == 0 {
			add("", types.SectionKey(section))
			continue
		}
		for _, t := range tags {
			add(t, types.SectionKey(section))
		}
	}
	return out, rows.Err()
}

// TitleCount is a title seen more than once in a run.
type TitleCount struct {
	Title string
	Count int
}

// DuplicateTitles returns titles that appear more than once in the latest
// run for date, most frequent first.
func (s *Store) DuplicateTitles(ctx context.Context, date string) ([]TitleCount, error) {
	runID, err := s.latestRun(ctx, date)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Select("title", "count(*) AS n").From("items").
		Where(sq.Eq{"run_id": runID}).
		GroupBy("title").Having("count(*) > 1").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying duplicate titles: %w", err)
	}
	defer rows.Close()

	var out []TitleCount
	for rows.Next() {
		var tc TitleCount
		if err := rows.Scan(&tc.Title, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}
