package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const peopleSchema = `
	CREATE TABLE IF NOT EXISTS people (
		position INTEGER PRIMARY KEY,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		age INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)
`

// SQLiteMedium keeps the collection in a single SQLite table. Row order is
// preserved through the position column.
type SQLiteMedium struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path with WAL.
func OpenSQLite(path string) (*SQLiteMedium, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %w", ErrUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %w", ErrUnavailable, err)
	}

	return &SQLiteMedium{db: db}, nil
}

// Close closes the database connection.
func (m *SQLiteMedium) Close() error {
	return m.db.Close()
}

// Init creates the people table if it does not exist.
func (m *SQLiteMedium) Init() error {
	if _, err := m.db.Exec(peopleSchema); err != nil {
		return fmt.Errorf("%w: create schema: %w", ErrUnavailable, err)
	}
	return nil
}

// Read returns all people ordered by position. A database without the
// people table is ErrUnavailable.
func (m *SQLiteMedium) Read() ([]Person, error) {
	rows, err := m.db.Query(`
		SELECT id, name, category, age, created_at
		FROM people
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query people: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	people := []Person{}
	for rows.Next() {
		var p Person
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Age, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan person: %w", ErrCorrupt, err)
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("%w: person %d: %w", ErrCorrupt, p.ID, err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate people: %w", ErrUnavailable, err)
	}
	return people, nil
}

// Write replaces every row in one transaction.
func (m *SQLiteMedium) Write(people []Person) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(peopleSchema); err != nil {
		return fmt.Errorf("%w: create schema: %w", ErrUnavailable, err)
	}
	if _, err := tx.Exec(`DELETE FROM people`); err != nil {
		return fmt.Errorf("%w: clear people: %w", ErrUnavailable, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO people (position, id, name, category, age, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %w", ErrUnavailable, err)
	}
	defer stmt.Close()

	for i, p := range people {
		if _, err := stmt.Exec(i, p.ID, p.Name, p.Category, p.Age, formatTime(p.CreatedAt)); err != nil {
			return fmt.Errorf("%w: insert person %d: %w", ErrUnavailable, p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrUnavailable, err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at %q: %w", s, err)
	}
	return t.UTC(), nil
}
