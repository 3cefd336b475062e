package store

import (
	"wedcms/internal/apperr"
	"wedcms/internal/models"
)

// RegisterUpload records metadata for a stored asset. No referential
// integrity is kept against section content; a section may reference a
// file whose record (or file) is gone.
func (s *Store) RegisterUpload(r models.UploadRecord) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.db.Exec(
		`INSERT INTO uploads (filename, original_name, file_path, file_type, file_size, upload_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Filename, r.OriginalName, r.FilePath, r.FileType, r.FileSize, r.UploadType,
	)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "register upload", err)
	}
	return nil
}

// UnregisterUpload removes every record matching filename and type.
func (s *Store) UnregisterUpload(filename, uploadType string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.db.Exec(`DELETE FROM uploads WHERE filename = ? AND upload_type = ?`, filename, uploadType)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "unregister upload", err)
	}
	return nil
}

func (s *Store) ListUploads(uploadType string) ([]models.UploadRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, filename, original_name, file_path, file_type, file_size, upload_type, created_at
		 FROM uploads WHERE upload_type = ? ORDER BY created_at DESC`, uploadType,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "list uploads", err)
	}
	defer rows.Close()

	var records []models.UploadRecord
	for rows.Next() {
		var r models.UploadRecord
		if err := rows.Scan(&r.ID, &r.Filename, &r.OriginalName, &r.FilePath,
			&r.FileType, &r.FileSize, &r.UploadType, &r.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindStorageFailure, "scan upload row", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "iterate uploads", err)
	}
	return records, nil
}
