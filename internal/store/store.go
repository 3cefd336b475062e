// Package store persists all site content in a single SQLite database:
// section documents, payment records, backup and upload metadata,
// blessings and settings.
package store

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"wedcms/internal/models"
)

type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT UNIQUE NOT NULL,
	value TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS site_data (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT UNIQUE NOT NULL,
	value TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS payments (
	id INTEGER PRIMARY KEY,
	recipient_name TEXT NOT NULL,
	bank_name TEXT NOT NULL,
	account_number TEXT NOT NULL,
	title TEXT,
	description TEXT,
	qr_code_url TEXT,
	is_active BOOLEAN DEFAULT 1,
	sort_order INTEGER DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS backups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	file_path TEXT NOT NULL,
	size INTEGER,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS uploads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	original_name TEXT,
	file_path TEXT NOT NULL,
	file_type TEXT,
	file_size INTEGER,
	upload_type TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS blessings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	from_person TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	is_approved BOOLEAN DEFAULT 1
);
CREATE TABLE IF NOT EXISTS telegram_config (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	bot_token TEXT,
	chat_id TEXT,
	enabled BOOLEAN DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, path: path}
	if err := s.seedDefaults(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func openDB(path string) (*sql.DB, error) {
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}

// seedDefaults inserts the initial sections on a fresh database.
func (s *Store) seedDefaults() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM site_data`).Scan(&count); err != nil {
		return fmt.Errorf("count sections: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := models.SiteData{
		"meta": map[string]interface{}{
			"title":        "Wedding Website",
			"description":  "Our Wedding Day",
			"primaryColor": "#9f5958",
		},
		"hero": map[string]interface{}{
			"groomName":       "Groom",
			"brideName":       "Bride",
			"weddingDate":     "2025-01-01",
			"weddingLocation": "",
		},
		"admin": map[string]interface{}{
			"version":    "2.0.0",
			"lastUpdate": time.Now().Format(time.RFC3339),
		},
	}

	for key, value := range defaults {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal default section %s: %w", key, err)
		}
		if _, err := s.db.Exec(`INSERT INTO site_data (key, value) VALUES (?, ?)`, key, string(raw)); err != nil {
			return fmt.Errorf("seed section %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Path returns the location of the live database file.
func (s *Store) Path() string {
	return s.path
}

// Snapshot writes a consistent copy of the database to destPath using
// VACUUM INTO, which is safe against concurrent readers and WAL state.
func (s *Store) Snapshot(destPath string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, err := s.db.Exec(`VACUUM INTO ?`, destPath); err != nil {
		return fmt.Errorf("vacuum into %s: %w", destPath, err)
	}
	return nil
}

// RestoreFrom replaces the live database with the file at srcPath.
// The handle is closed for the duration of the copy; stale WAL and SHM
// files are removed so the restored content wins.
func (s *Store) RestoreFrom(srcPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close db before restore: %w", err)
	}

	if err := copyFile(srcPath, s.path); err != nil {
		// Try to come back up on the old content anyway.
		if db, reopenErr := openDB(s.path); reopenErr == nil {
			s.db = db
		}
		return fmt.Errorf("copy backup into place: %w", err)
	}
	_ = os.Remove(s.path + "-wal")
	_ = os.Remove(s.path + "-shm")

	db, err := openDB(s.path)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
