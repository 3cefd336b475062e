package store

import (
	"database/sql"
	"errors"

	"wedcms/internal/apperr"
	"wedcms/internal/models"
)

// ListPayments returns all payment records in the admin ordering:
// ascending sort_order, ties broken by newest created_at first.
func (s *Store) ListPayments() ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, recipient_name, bank_name, account_number, title, description,
		        qr_code_url, is_active, sort_order, created_at, updated_at
		 FROM payments ORDER BY sort_order ASC, created_at DESC`,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "list payments", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "iterate payments", err)
	}
	return payments, nil
}

func scanPayment(rows *sql.Rows) (models.Payment, error) {
	var p models.Payment
	var title, description, qr sql.NullString
	err := rows.Scan(&p.ID, &p.RecipientName, &p.BankName, &p.AccountNumber,
		&title, &description, &qr, &p.IsActive, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, apperr.Wrap(apperr.KindStorageFailure, "scan payment row", err)
	}
	p.Title = title.String
	p.Description = description.String
	p.QRCodeURL = qr.String
	return p, nil
}

// GetPayment fetches one record by id.
func (s *Store) GetPayment(id int) (models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p models.Payment
	var title, description, qr sql.NullString
	err := s.db.QueryRow(
		`SELECT id, recipient_name, bank_name, account_number, title, description,
		        qr_code_url, is_active, sort_order, created_at, updated_at
		 FROM payments WHERE id = ?`, id,
	).Scan(&p.ID, &p.RecipientName, &p.BankName, &p.AccountNumber,
		&title, &description, &qr, &p.IsActive, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, apperr.Newf(apperr.KindNotFound, "payment %d does not exist", id)
	}
	if err != nil {
		return p, apperr.Wrap(apperr.KindStorageFailure, "read payment", err)
	}
	p.Title = title.String
	p.Description = description.String
	p.QRCodeURL = qr.String
	return p, nil
}

// NextPaymentID assigns ids as max(existing, 0) + 1 rather than relying on
// AUTOINCREMENT, so deleting every payment resets the sequence to 1.
func (s *Store) NextPaymentID() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var next int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(id), 0) + 1 FROM payments`).Scan(&next); err != nil {
		return 0, apperr.Wrap(apperr.KindStorageFailure, "next payment id", err)
	}
	return next, nil
}

func (s *Store) InsertPayment(p models.Payment) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.db.Exec(
		`INSERT INTO payments (id, recipient_name, bank_name, account_number, title,
		                       description, qr_code_url, is_active, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.RecipientName, p.BankName, p.AccountNumber, p.Title,
		p.Description, p.QRCodeURL, p.IsActive, p.SortOrder, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "insert payment", err)
	}
	return nil
}

func (s *Store) UpdatePayment(p models.Payment) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.db.Exec(
		`UPDATE payments SET recipient_name = ?, bank_name = ?, account_number = ?,
		        title = ?, description = ?, qr_code_url = ?, is_active = ?,
		        sort_order = ?, updated_at = ?
		 WHERE id = ?`,
		p.RecipientName, p.BankName, p.AccountNumber, p.Title, p.Description,
		p.QRCodeURL, p.IsActive, p.SortOrder, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "update payment", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.Newf(apperr.KindNotFound, "payment %d does not exist", p.ID)
	}
	return nil
}

func (s *Store) DeletePayment(id int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.db.Exec(`DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "delete payment", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.Newf(apperr.KindNotFound, "payment %d does not exist", id)
	}
	return nil
}
