package store

import (
	"wedcms/internal/apperr"
	"wedcms/internal/models"
)

func (s *Store) InsertBackup(filename, filePath string, size int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.db.Exec(
		`INSERT INTO backups (filename, file_path, size) VALUES (?, ?, ?)`,
		filename, filePath, size,
	)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "insert backup record", err)
	}
	return nil
}

// ListBackups returns backup records newest first. Same-second snapshots
// are disambiguated by descending id. limit <= 0 means no limit.
func (s *Store) ListBackups(limit int) ([]models.BackupRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, filename, file_path, size, created_at
	          FROM backups ORDER BY created_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "list backups", err)
	}
	defer rows.Close()

	var records []models.BackupRecord
	for rows.Next() {
		var r models.BackupRecord
		if err := rows.Scan(&r.ID, &r.Filename, &r.FilePath, &r.Size, &r.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindStorageFailure, "scan backup row", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "iterate backups", err)
	}
	return records, nil
}

func (s *Store) DeleteBackupRecord(id int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.db.Exec(`DELETE FROM backups WHERE id = ?`, id); err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "delete backup record", err)
	}
	return nil
}

// BackupTotals returns the record count and summed file size.
func (s *Store) BackupTotals() (int, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	var size int64
	err := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM backups`).Scan(&count, &size)
	if err != nil {
		return 0, 0, apperr.Wrap(apperr.KindStorageFailure, "backup totals", err)
	}
	return count, size, nil
}

// BackupCount feeds the backups gauge.
func (s *Store) BackupCount() int {
	count, _, err := s.BackupTotals()
	if err != nil {
		return 0
	}
	return count
}
