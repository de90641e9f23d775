package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// SQLiteSlot stores the collection as one row of a key-value table in a local
// SQLite database.
type SQLiteSlot struct {
	db   *sql.DB
	name string

	loadStmt *sql.Stmt
	saveStmt *sql.Stmt
}

// NewSQLiteSlot opens (or creates) the SQLite database at dbPath, applies the
// schema and prepares the slot statements.
func NewSQLiteSlot(dbPath, name string) (*SQLiteSlot, error) {
	if name == "" {
		name = DefaultSlot
	}

	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create db dir")
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteSlot{db: db, name: name}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases prepared statements and closes the DB.
func (s *SQLiteSlot) Close() error {
	if s.loadStmt != nil {
		s.loadStmt.Close()
	}
	if s.saveStmt != nil {
		s.saveStmt.Close()
	}
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return errors.Wrap(err, "enable WAL")
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return errors.WithStack(err)
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.WithStack(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`CREATE TABLE IF NOT EXISTS slots (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`); err != nil {
		return errors.Wrap(err, "apply migration")
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return errors.Wrap(err, "record schema version")
	}

	return errors.WithStack(tx.Commit())
}

func (s *SQLiteSlot) prepareStatements() error {
	var err error
	if s.loadStmt, err = s.db.Prepare(`SELECT value FROM slots WHERE key=?`); err != nil {
		return errors.WithStack(err)
	}
	if s.saveStmt, err = s.db.Prepare(`INSERT INTO slots(key,value,updated_at) VALUES(?,?,CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Slot
// ---------------------------------------------------------------------------

// LoadAll reads the slot row. A missing row is an empty collection.
func (s *SQLiteSlot) LoadAll() ([]Book, error) {
	var value string
	err := s.loadStmt.QueryRow(s.name).Scan(&value)
	if err == sql.ErrNoRows {
		return []Book{}, nil
	}
	if err != nil {
		return nil, errors.WithStack(StoreUnavailable(s.name, err))
	}
	return decodeBooks(s.name, []byte(value))
}

// SaveAll replaces the slot row in a single upsert.
func (s *SQLiteSlot) SaveAll(books []Book) error {
	data, err := encodeBooks(books)
	if err != nil {
		return err
	}
	if _, err := s.saveStmt.Exec(s.name, string(data)); err != nil {
		return errors.WithStack(StoreUnavailable(s.name, err))
	}
	return nil
}
