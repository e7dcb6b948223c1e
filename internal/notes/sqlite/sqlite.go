package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/chris-regnier/dialcal/internal/notes"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements notes.Store on an in-memory libSQL database. Nothing
// outlives Close.
type Store struct {
	db *sql.DB
}

// New opens a fresh in-memory database.
func New() (*Store, error) {
	db, err := sql.Open("libsql", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", notes.ErrStorage, err)
	}
	// Every pooled connection to :memory: would get its own database.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS notes (
			day  TEXT PRIMARY KEY,
			text TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", notes.ErrStorage, err)
	}
	return nil
}

// Close closes the database, discarding every note.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetNote upserts the note for day.
func (s *Store) SetNote(day string, text string) error {
	_, err := s.db.Exec(
		"INSERT INTO notes (day, text) VALUES (?, ?) ON CONFLICT(day) DO UPDATE SET text = excluded.text",
		day, text,
	)
	if err != nil {
		return fmt.Errorf("%w: upserting note: %v", notes.ErrStorage, err)
	}
	return nil
}

// ClearNote blanks the note for day, keeping the row.
func (s *Store) ClearNote(day string) error {
	return s.SetNote(day, "")
}

// Note returns the note for day, or "" when none was stored.
func (s *Store) Note(day string) (string, error) {
	var text string
	err := s.db.QueryRow("SELECT text FROM notes WHERE day = ?", day).Scan(&text)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: querying note: %v", notes.ErrStorage, err)
	}
	return text, nil
}

// Notes returns every stored note, cleared ones included.
func (s *Store) Notes() (map[string]string, error) {
	rows, err := s.db.Query("SELECT day, text FROM notes")
	if err != nil {
		return nil, fmt.Errorf("%w: listing notes: %v", notes.ErrStorage, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var day, text string
		if err := rows.Scan(&day, &text); err != nil {
			return nil, fmt.Errorf("%w: scanning note: %v", notes.ErrStorage, err)
		}
		out[day] = text
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating notes: %v", notes.ErrStorage, err)
	}
	return out, nil
}
