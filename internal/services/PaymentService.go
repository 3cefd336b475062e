package services

import (
	"sort"
	"time"

	json "github.com/goccy/go-json"

	"wedcms/internal/apperr"
	"wedcms/internal/backup"
	"wedcms/internal/models"
	"wedcms/internal/providers"
	"wedcms/internal/store"
)

const (
	globalMessageKey = "payment_global_message"

	// Default QR assets assigned to records without an uploaded code.
	defaultQRPrimary   = "/public/images/default/qr/qr_man.webp"
	defaultQRSecondary = "/public/images/default/qr/qr_woman.webp"
)

// PaymentInput carries payment fields from the API. Nil pointers mean
// "keep the existing value" on update and "use the default" on create.
type PaymentInput struct {
	RecipientName *string `json:"recipient_name"`
	BankName      *string `json:"bank_name"`
	AccountNumber *string `json:"account_number"`
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	QRCodeURL     *string `json:"qr_code_url"`
	IsActive      *bool   `json:"is_active"`
	SortOrder     *int    `json:"sort_order"`
}

type PaymentServiceInterface interface {
	List() ([]models.Payment, error)
	Create(input PaymentInput) (models.Payment, error)
	Update(id int, input PaymentInput) (models.Payment, error)
	Delete(id int) error
	Project() error
	FrontendView() (models.PaymentView, error)
	GlobalMessage() (string, error)
	SetGlobalMessage(message string) error
}

type PaymentService struct {
	store   *store.Store
	backups backup.ManagerInterface
	assets  AssetDeleter
	logger  providers.Logger
}

// AssetDeleter is the slice of the upload layer payment records need:
// removing an uploaded QR image when its record is replaced or deleted.
type AssetDeleter interface {
	DeleteByURL(url string) error
}

func NewPaymentService(st *store.Store, backups backup.ManagerInterface, assets AssetDeleter, logger providers.Logger) PaymentServiceInterface {
	return &PaymentService{
		store:   st,
		backups: backups,
		assets:  assets,
		logger:  logger,
	}
}

// List returns payment records in the admin ordering (ascending
// sort_order, newest first within equal sort_order).
func (ps *PaymentService) List() ([]models.Payment, error) {
	payments, err := ps.store.ListPayments()
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

func (ps *PaymentService) Create(input PaymentInput) (models.Payment, error) {
	if strVal(input.RecipientName) == "" {
		return models.Payment{}, apperr.New(apperr.KindInvalidInput, "recipient_name is required")
	}
	if strVal(input.BankName) == "" {
		return models.Payment{}, apperr.New(apperr.KindInvalidInput, "bank_name is required")
	}
	if strVal(input.AccountNumber) == "" {
		return models.Payment{}, apperr.New(apperr.KindInvalidInput, "account_number is required")
	}

	id, err := ps.store.NextPaymentID()
	if err != nil {
		return models.Payment{}, err
	}

	now := time.Now().Format(time.RFC3339)
	payment := models.Payment{
		ID:            id,
		RecipientName: strVal(input.RecipientName),
		BankName:      strVal(input.BankName),
		AccountNumber: strVal(input.AccountNumber),
		Title:         strVal(input.Title),
		Description:   strVal(input.Description),
		QRCodeURL:     strVal(input.QRCodeURL),
		IsActive:      boolVal(input.IsActive, true),
		SortOrder:     intVal(input.SortOrder, 1),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := ps.backups.Snapshot(); err != nil {
		return models.Payment{}, err
	}
	if err := ps.store.InsertPayment(payment); err != nil {
		return models.Payment{}, err
	}
	if err := ps.Project(); err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (ps *PaymentService) Update(id int, input PaymentInput) (models.Payment, error) {
	existing, err := ps.store.GetPayment(id)
	if err != nil {
		return models.Payment{}, err
	}

	// A newly uploaded QR replaces the previous file on disk as well.
	if input.QRCodeURL != nil && existing.QRCodeURL != "" && *input.QRCodeURL != existing.QRCodeURL {
		if err := ps.assets.DeleteByURL(existing.QRCodeURL); err != nil {
			ps.logger.Warnf(providers.TypeApp, "Could not delete old QR code %s: %s", existing.QRCodeURL, err)
		}
	}

	updated := existing
	if input.RecipientName != nil {
		updated.RecipientName = *input.RecipientName
	}
	if input.BankName != nil {
		updated.BankName = *input.BankName
	}
	if input.AccountNumber != nil {
		updated.AccountNumber = *input.AccountNumber
	}
	if input.Title != nil {
		updated.Title = *input.Title
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.QRCodeURL != nil {
		updated.QRCodeURL = *input.QRCodeURL
	}
	if input.IsActive != nil {
		updated.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		updated.SortOrder = *input.SortOrder
	}
	updated.UpdatedAt = time.Now().Format(time.RFC3339)

	if err := ps.backups.Snapshot(); err != nil {
		return models.Payment{}, err
	}
	if err := ps.store.UpdatePayment(updated); err != nil {
		return models.Payment{}, err
	}
	if err := ps.Project(); err != nil {
		return models.Payment{}, err
	}
	return updated, nil
}

func (ps *PaymentService) Delete(id int) error {
	existing, err := ps.store.GetPayment(id)
	if err != nil {
		return err
	}

	if existing.QRCodeURL != "" {
		if err := ps.assets.DeleteByURL(existing.QRCodeURL); err != nil {
			ps.logger.Warnf(providers.TypeApp, "Could not delete QR code %s: %s", existing.QRCodeURL, err)
		}
	}

	if err := ps.backups.Snapshot(); err != nil {
		return err
	}
	if err := ps.store.DeletePayment(id); err != nil {
		return err
	}
	return ps.Project()
}

// Project recomputes the public payment view from the payments table
// and the global message setting, and persists it into the payment
// section so aggregate readers see a consistent shape.
func (ps *PaymentService) Project() error {
	message, err := ps.store.GetSetting(globalMessageKey)
	if err != nil {
		return err
	}
	payments, err := ps.store.ListPayments()
	if err != nil {
		return err
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	for i := range payments {
		payments[i].QRCodeURL = withDefaultQR(payments[i])
	}

	view := models.PaymentView{GlobalMessage: message, Payments: payments}
	raw, err := json.Marshal(view)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "marshal payment projection", err)
	}
	if err := ps.store.PutSection("payment", raw); err != nil {
		return err
	}
	ps.logger.Infof(providers.TypeApp, "Payment projection updated, %d records", len(payments))
	return nil
}

// FrontendView is the public variant: inactive records dropped, sorted
// by ascending sort_order with ascending created_at string comparison
// as the tie-break. Note the tie-break direction differs from List on
// purpose; the two call sites disagreed in the original system and
// consumers may depend on either.
func (ps *PaymentService) FrontendView() (models.PaymentView, error) {
	message, err := ps.store.GetSetting(globalMessageKey)
	if err != nil {
		return models.PaymentView{}, err
	}
	payments, err := ps.store.ListPayments()
	if err != nil {
		return models.PaymentView{}, err
	}

	active := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if !p.IsActive {
			continue
		}
		p.QRCodeURL = withDefaultQR(p)
		active = append(active, p)
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].SortOrder != active[j].SortOrder {
			return active[i].SortOrder < active[j].SortOrder
		}
		return active[i].CreatedAt < active[j].CreatedAt
	})

	return models.PaymentView{GlobalMessage: message, Payments: active}, nil
}

func (ps *PaymentService) GlobalMessage() (string, error) {
	return ps.store.GetSetting(globalMessageKey)
}

func (ps *PaymentService) SetGlobalMessage(message string) error {
	if err := ps.backups.Snapshot(); err != nil {
		return err
	}
	if err := ps.store.PutSetting(globalMessageKey, message); err != nil {
		return err
	}
	return ps.Project()
}

// withDefaultQR resolves the QR url for display: records without an
// uploaded code alternate between the two bundled defaults, keyed on
// sort_order and id parity.
func withDefaultQR(p models.Payment) string {
	if p.QRCodeURL != "" {
		return p.QRCodeURL
	}
	if p.SortOrder == 1 || p.ID%2 == 1 {
		return defaultQRPrimary
	}
	return defaultQRSecondary
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolVal(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func intVal(i *int, def int) int {
	if i == nil {
		return def
	}
	return *i
}
