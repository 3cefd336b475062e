package services

import (
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedcms/internal/apperr"
	"wedcms/internal/models"
	"wedcms/internal/store"
	"wedcms/internal/testutil"
)

type stubAssetDeleter struct {
	deleted []string
	err     error
}

func (d *stubAssetDeleter) DeleteByURL(url string) error {
	d.deleted = append(d.deleted, url)
	return d.err
}

func openServiceStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newTestPaymentService(t *testing.T) (PaymentServiceInterface, *store.Store, *testutil.MockBackupManager, *stubAssetDeleter) {
	t.Helper()
	st := openServiceStore(t)
	backups := &testutil.MockBackupManager{}
	deleter := &stubAssetDeleter{}
	svc := NewPaymentService(st, backups, deleter, &testutil.MockLogger{})
	return svc, st, backups, deleter
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func validInput(name string) PaymentInput {
	return PaymentInput{
		RecipientName: strPtr(name),
		BankName:      strPtr("Bank"),
		AccountNumber: strPtr("123456"),
	}
}

func TestCreatePayment_RequiredFields(t *testing.T) {
	svc, _, _, _ := newTestPaymentService(t)

	cases := []PaymentInput{
		{BankName: strPtr("B"), AccountNumber: strPtr("1")},
		{RecipientName: strPtr("R"), AccountNumber: strPtr("1")},
		{RecipientName: strPtr("R"), BankName: strPtr("B")},
	}
	for _, input := range cases {
		_, err := svc.Create(input)
		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	}
}

func TestCreatePayment_DefaultsAndSnapshot(t *testing.T) {
	svc, _, backups, _ := newTestPaymentService(t)

	payment, err := svc.Create(validInput("Alice"))
	require.NoError(t, err)

	assert.Equal(t, 1, payment.ID)
	assert.True(t, payment.IsActive)
	assert.Equal(t, 1, payment.SortOrder)
	assert.NotEmpty(t, payment.CreatedAt)
	assert.Equal(t, 1, backups.SnapshotCalls)
}

func TestCreatePayment_IDIsMaxPlusOne(t *testing.T) {
	svc, _, _, _ := newTestPaymentService(t)

	first, err := svc.Create(validInput("A"))
	require.NoError(t, err)
	second, err := svc.Create(validInput("B"))
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)

	// Deleting everything resets the sequence.
	require.NoError(t, svc.Delete(first.ID))
	require.NoError(t, svc.Delete(second.ID))
	again, err := svc.Create(validInput("C"))
	require.NoError(t, err)
	assert.Equal(t, 1, again.ID)
}

func TestUpdatePayment_PartialFields(t *testing.T) {
	svc, _, _, _ := newTestPaymentService(t)
	created, err := svc.Create(validInput("Alice"))
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, PaymentInput{Title: strPtr("Gift")})
	require.NoError(t, err)

	assert.Equal(t, "Gift", updated.Title)
	assert.Equal(t, "Alice", updated.RecipientName)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdatePayment_NotFound(t *testing.T) {
	svc, _, _, _ := newTestPaymentService(t)

	_, err := svc.Update(99, PaymentInput{Title: strPtr("x")})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdatePayment_ReplacedQRDeletesOldFile(t *testing.T) {
	svc, _, _, deleter := newTestPaymentService(t)
	input := validInput("Alice")
	input.QRCodeURL = strPtr("/public/images/qr/old.png")
	created, err := svc.Create(input)
	require.NoError(t, err)

	_, err = svc.Update(created.ID, PaymentInput{QRCodeURL: strPtr("/public/images/qr/new.png")})
	require.NoError(t, err)

	assert.Equal(t, []string{"/public/images/qr/old.png"}, deleter.deleted)
}

func TestDeletePayment_RemovesQRFile(t *testing.T) {
	svc, _, _, deleter := newTestPaymentService(t)
	input := validInput("Alice")
	input.QRCodeURL = strPtr("/public/images/qr/code.png")
	created, err := svc.Create(input)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))
	assert.Equal(t, []string{"/public/images/qr/code.png"}, deleter.deleted)

	payments, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestDefaultQR_Assignment(t *testing.T) {
	cases := []struct {
		name    string
		payment models.Payment
		want    string
	}{
		{"uploaded QR wins", models.Payment{ID: 2, SortOrder: 2, QRCodeURL: "/custom.png"}, "/custom.png"},
		{"sort order one", models.Payment{ID: 4, SortOrder: 1}, defaultQRPrimary},
		{"odd id", models.Payment{ID: 3, SortOrder: 7}, defaultQRPrimary},
		{"even id other sort", models.Payment{ID: 4, SortOrder: 2}, defaultQRSecondary},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, withDefaultQR(tc.payment))
		})
	}
}

func TestProject_WritesPaymentSection(t *testing.T) {
	svc, st, _, _ := newTestPaymentService(t)
	require.NoError(t, svc.SetGlobalMessage("thank you"))
	_, err := svc.Create(validInput("Alice"))
	require.NoError(t, err)

	raw, err := st.GetSection("payment")
	require.NoError(t, err)

	var view models.PaymentView
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.Equal(t, "thank you", view.GlobalMessage)
	require.Len(t, view.Payments, 1)
	assert.Equal(t, defaultQRPrimary, view.Payments[0].QRCodeURL)
}

func TestFrontendView_FiltersInactiveAndSorts(t *testing.T) {
	svc, _, _, _ := newTestPaymentService(t)

	input := validInput("second")
	input.SortOrder = intPtr(2)
	_, err := svc.Create(input)
	require.NoError(t, err)

	input = validInput("first")
	input.SortOrder = intPtr(1)
	_, err = svc.Create(input)
	require.NoError(t, err)

	input = validInput("hidden")
	input.IsActive = boolPtr(false)
	_, err = svc.Create(input)
	require.NoError(t, err)

	view, err := svc.FrontendView()
	require.NoError(t, err)
	require.Len(t, view.Payments, 2)
	assert.Equal(t, "first", view.Payments[0].RecipientName)
	assert.Equal(t, "second", view.Payments[1].RecipientName)
}

func TestGlobalMessage_RoundTrip(t *testing.T) {
	svc, _, _, _ := newTestPaymentService(t)

	message, err := svc.GlobalMessage()
	require.NoError(t, err)
	assert.Equal(t, "", message)

	require.NoError(t, svc.SetGlobalMessage("see you there"))
	message, err = svc.GlobalMessage()
	require.NoError(t, err)
	assert.Equal(t, "see you there", message)
}
