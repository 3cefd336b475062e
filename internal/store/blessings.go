package store

import (
	"database/sql"
	"errors"

	"wedcms/internal/apperr"
	"wedcms/internal/models"
)

func (s *Store) InsertBlessing(name, from, content string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.db.Exec(
		`INSERT INTO blessings (name, from_person, content) VALUES (?, ?, ?)`,
		name, from, content,
	)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindStorageFailure, "insert blessing", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Wrap(apperr.KindStorageFailure, "blessing id", err)
	}
	return int(id), nil
}

// LatestBlessings returns the newest blessings. With approvedOnly the
// unapproved ones are filtered out, which is the public read path.
func (s *Store) LatestBlessings(limit int, approvedOnly bool) ([]models.Blessing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, from_person, content, created_at, is_approved FROM blessings`
	if approvedOnly {
		query += ` WHERE is_approved = 1`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "latest blessings", err)
	}
	defer rows.Close()
	return scanBlessings(rows)
}

// SearchBlessings pages through blessings for the admin panel. search
// matches name or content; approved of nil means no approval filter.
func (s *Store) SearchBlessings(page, perPage int, search string, approved *bool) ([]models.Blessing, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where := ""
	var args []interface{}
	if search != "" {
		where = ` WHERE (name LIKE ? OR content LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if approved != nil {
		if where == "" {
			where = ` WHERE is_approved = ?`
		} else {
			where += ` AND is_approved = ?`
		}
		args = append(args, *approved)
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM blessings`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.KindStorageFailure, "count blessings", err)
	}

	offset := (page - 1) * perPage
	rows, err := s.db.Query(
		`SELECT id, name, from_person, content, created_at, is_approved FROM blessings`+
			where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, perPage, offset)...,
	)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindStorageFailure, "search blessings", err)
	}
	defer rows.Close()

	blessings, err := scanBlessings(rows)
	if err != nil {
		return nil, 0, err
	}
	return blessings, total, nil
}

func scanBlessings(rows *sql.Rows) ([]models.Blessing, error) {
	var blessings []models.Blessing
	for rows.Next() {
		var b models.Blessing
		var approved sql.NullBool
		if err := rows.Scan(&b.ID, &b.Name, &b.From, &b.Content, &b.CreatedAt, &approved); err != nil {
			return nil, apperr.Wrap(apperr.KindStorageFailure, "scan blessing row", err)
		}
		b.IsApproved = approved.Valid && approved.Bool
		blessings = append(blessings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "iterate blessings", err)
	}
	return blessings, nil
}

func (s *Store) BlessingStats() (models.BlessingStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.BlessingStats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN is_approved = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN is_approved = 0 OR is_approved IS NULL THEN 1 ELSE 0 END), 0)
		 FROM blessings`,
	).Scan(&stats.Total, &stats.Approved, &stats.Pending)
	if err != nil {
		return stats, apperr.Wrap(apperr.KindStorageFailure, "blessing stats", err)
	}
	return stats, nil
}

func (s *Store) SetBlessingApproved(id int, approved bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.db.Exec(`UPDATE blessings SET is_approved = ? WHERE id = ?`, approved, id)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "approve blessing", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.Newf(apperr.KindNotFound, "blessing %d does not exist", id)
	}
	return nil
}

func (s *Store) DeleteBlessing(id int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.db.Exec(`DELETE FROM blessings WHERE id = ?`, id)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "delete blessing", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.Newf(apperr.KindNotFound, "blessing %d does not exist", id)
	}
	return nil
}

func (s *Store) GetTelegramConfig() (models.TelegramConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cfg models.TelegramConfig
	var token, chatID sql.NullString
	err := s.db.QueryRow(
		`SELECT bot_token, chat_id, enabled FROM telegram_config ORDER BY id DESC LIMIT 1`,
	).Scan(&token, &chatID, &cfg.Enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return cfg, nil
	}
	if err != nil {
		return cfg, apperr.Wrap(apperr.KindStorageFailure, "read telegram config", err)
	}
	cfg.BotToken = token.String
	cfg.ChatID = chatID.String
	return cfg, nil
}

func (s *Store) PutTelegramConfig(cfg models.TelegramConfig) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO telegram_config (id, bot_token, chat_id, enabled, updated_at)
		 VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)`,
		cfg.BotToken, cfg.ChatID, cfg.Enabled,
	)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "write telegram config", err)
	}
	return nil
}
