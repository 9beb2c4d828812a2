// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of successful conversions so earlier
// Markdown can be listed, searched and printed again without re-fetching or
// re-extracting the source.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docmark/pkg/types"
)

// ErrNotFound is returned by Get for an unknown entry id.
var ErrNotFound = errors.New("history entry not found")

const (
	// defaultLimit caps List and Search when the caller passes no limit.
	defaultLimit = 20

	// timeLayout is fixed-width so stored timestamps sort as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Entry is one recorded conversion.
type Entry struct {
	ID          string           `json:"id" yaml:"id"`
	Source      string           `json:"source" yaml:"source"`
	Filename    string           `json:"filename" yaml:"filename"`
	SourceKind  types.SourceKind `json:"source_kind" yaml:"source_kind"`
	ConvertedAt time.Time        `json:"converted_at" yaml:"converted_at"`
	Bytes       int              `json:"bytes" yaml:"bytes"`

	// Markdown is only populated by Get.
	Markdown string `json:"markdown,omitempty" yaml:"markdown,omitempty"`
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed. ":memory:" opens a private
// in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating history directory: %w", err)
			}
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
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
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			filename TEXT NOT NULL,
			source_kind TEXT NOT NULL,
			converted_at TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			markdown TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_converted_at ON conversions(converted_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores result under a new id and returns it. It satisfies
// convert.Recorder.
func (s *Store) Record(ctx context.Context, source string, result types.ConversionResult) (string, error) {
	id := uuid.NewString()
	at := result.Timestamp
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, source, filename, source_kind, converted_at, bytes, markdown)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, source, result.Filename, string(result.SourceKind),
		at.UTC().Format(timeLayout), len(result.Markdown), result.Markdown,
	)
	if err != nil {
		return "", fmt.Errorf("recording conversion of %s: %w", source, err)
	}
	return id, nil
}

// List returns the most recent entries first, without their Markdown.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.query(ctx, "", limit)
}

// Search returns entries whose source, file name, or Markdown contains query
// (case-insensitive for ASCII), most recent first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	if strings.TrimSpace(query) == "" {
		return s.List(ctx, limit)
	}
	return s.query(ctx, query, limit)
}

func (s *Store) query(ctx context.Context, match string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, source, filename, source_kind, converted_at, bytes FROM conversions`)
	if match != "" {
		pattern := "%" + escapeLike(match) + "%"
		qb.WriteString(` WHERE source LIKE ? ESCAPE '\' OR filename LIKE ? ESCAPE '\' OR markdown LIKE ? ESCAPE '\'`)
		args = append(args, pattern, pattern, pattern)
	}
	qb.WriteString(` ORDER BY converted_at DESC, rowid DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			kind string
			at   string
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.Filename, &kind, &at, &e.Bytes); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.SourceKind = types.SourceKind(kind)
		e.ConvertedAt = parseTime(at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry with the given id, including its Markdown.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	var (
		e    Entry
		kind string
		at   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, filename, source_kind, converted_at, bytes, markdown
		FROM conversions WHERE id = ?`, id,
	).Scan(&e.ID, &e.Source, &e.Filename, &kind, &at, &e.Bytes, &e.Markdown)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("reading history entry %s: %w", id, err)
	}
	e.SourceKind = types.SourceKind(kind)
	e.ConvertedAt = parseTime(at)
	return e, nil
}

// Delete removes the entry with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM conversions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting history entry %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
