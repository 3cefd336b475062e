package store

import (
	"database/sql"
	"errors"

	"wedcms/internal/apperr"
)

// GetSection returns the raw JSON stored under a section key.
func (s *Store) GetSection(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM site_data WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Newf(apperr.KindNotFound, "section %s does not exist", key)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "read section "+key, err)
	}
	return []byte(value), nil
}

// PutSection upserts one section value and bumps its modification time.
func (s *Store) PutSection(key string, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO site_data (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, string(value),
	)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "write section "+key, err)
	}
	return nil
}

// GetAllSections returns every stored section keyed by name, values raw.
func (s *Store) GetAllSections() (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT key, value FROM site_data`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "read sections", err)
	}
	defer rows.Close()

	sections := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, apperr.Wrap(apperr.KindStorageFailure, "scan section row", err)
		}
		sections[key] = []byte(value)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "iterate sections", err)
	}
	return sections, nil
}

// SectionCount feeds the sections gauge.
func (s *Store) SectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM site_data`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// GetSetting reads one settings value; the empty string when absent.
func (s *Store) GetSetting(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value sql.NullString
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", apperr.Wrap(apperr.KindStorageFailure, "read setting "+key, err)
	}
	return value.String, nil
}

func (s *Store) PutSetting(key, value string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value,
	)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "write setting "+key, err)
	}
	return nil
}
