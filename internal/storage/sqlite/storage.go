// Package sqlite provides the SQLite-backed note storage of the reference server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	owner      TEXT NOT NULL,
	title      TEXT NOT NULL,
	body       TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_owner_id ON notes (owner, id DESC);
`

const timeLayout = time.RFC3339Nano

// Record is a stored note.
type Record struct {
	ID        int64
	Owner     string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SQLiteStorage stores notes per owner in a SQLite database.
type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := storage.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStorage) init() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}
	return nil
}

// ListNotes returns owner's notes, most recent first.
func (s *SQLiteStorage) ListNotes(ctx context.Context, owner string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, title, body, created_at, updated_at FROM notes WHERE owner = ? ORDER BY id DESC`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list notes: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: list notes: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list notes: %w", err)
	}
	return records, nil
}

// CreateNote inserts a note and returns it with its generated ID.
func (s *SQLiteStorage) CreateNote(ctx context.Context, owner, title, body string) (Record, error) {
	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (owner, title, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		owner, title, body, now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return Record{}, fmt.Errorf("sqlite storage: create note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("sqlite storage: create note: %w", err)
	}
	return Record{ID: id, Owner: owner, Title: title, Body: body, CreatedAt: now, UpdatedAt: now}, nil
}

// GetNote returns one of owner's notes.
func (s *SQLiteStorage) GetNote(ctx context.Context, owner, id string) (Record, error) {
	idInt, err := parseID(id)
	if err != nil {
		return Record{}, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner, title, body, created_at, updated_at FROM notes WHERE owner = ? AND id = ?`,
		owner, idInt)
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("sqlite storage: get note: %w: id %s", ErrNoteNotFound, id)
		}
		return Record{}, fmt.Errorf("sqlite storage: get note: %w", err)
	}
	return r, nil
}

// UpdateNote replaces title and body of one of owner's notes.
func (s *SQLiteStorage) UpdateNote(ctx context.Context, owner, id, title, body string) (Record, error) {
	idInt, err := parseID(id)
	if err != nil {
		return Record{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, body = ?, updated_at = ? WHERE owner = ? AND id = ?`,
		title, body, s.now().Format(timeLayout), owner, idInt)
	if err != nil {
		return Record{}, fmt.Errorf("sqlite storage: update note: %w", err)
	}
	if err := requireAffected(res, "update note", id); err != nil {
		return Record{}, err
	}
	return s.GetNote(ctx, owner, id)
}

// DeleteNote removes one of owner's notes.
func (s *SQLiteStorage) DeleteNote(ctx context.Context, owner, id string) error {
	idInt, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE owner = ? AND id = ?`, owner, idInt)
	if err != nil {
		return fmt.Errorf("sqlite storage: delete note: %w", err)
	}
	return requireAffected(res, "delete note", id)
}

// CountNotes returns how many notes owner has.
func (s *SQLiteStorage) CountNotes(ctx context.Context, owner string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE owner = ?`, owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite storage: count notes: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var r Record
	var created, updated string
	if err := sc.Scan(&r.ID, &r.Owner, &r.Title, &r.Body, &created, &updated); err != nil {
		return Record{}, err
	}
	var err error
	if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return Record{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return r, nil
}

func requireAffected(res sql.Result, op, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: %s: read rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("sqlite storage: %s: %w: id %s", op, ErrNoteNotFound, id)
	}
	return nil
}

func parseID(id string) (int64, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, fmt.Errorf("sqlite storage: %w: empty", ErrInvalidNoteID)
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("sqlite storage: %w: %q", ErrInvalidNoteID, id)
	}
	return n, nil
}
