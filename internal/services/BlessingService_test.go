package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedcms/internal/apperr"
	"wedcms/internal/models"
	"wedcms/internal/testutil"
)

type stubNotifier struct {
	notified []models.Blessing
}

func (n *stubNotifier) GetConfig() (models.TelegramConfig, error) {
	return models.TelegramConfig{}, nil
}
func (n *stubNotifier) SaveConfig(_ models.TelegramConfig) error { return nil }
func (n *stubNotifier) NotifyBlessing(b models.Blessing)         { n.notified = append(n.notified, b) }

func newTestBlessingService(t *testing.T) (BlessingServiceInterface, *stubNotifier) {
	t.Helper()
	st := openServiceStore(t)
	notifier := &stubNotifier{}
	return NewBlessingService(st, notifier, &testutil.MockLogger{}), notifier
}

func TestSendBlessing_ValidatesRequiredFields(t *testing.T) {
	svc, notifier := newTestBlessingService(t)

	cases := []BlessingInput{
		{From: "friend", Content: "hi"},
		{Name: "Alice", Content: "hi"},
		{Name: "Alice", From: "friend"},
	}
	for _, input := range cases {
		_, err := svc.Send(input)
		require.Error(t, err)
		assert.True(t, apperr.IsInvalidInput(err))
	}
	assert.Empty(t, notifier.notified)
}

func TestSendBlessing_StoresAndNotifies(t *testing.T) {
	svc, notifier := newTestBlessingService(t)

	blessing, err := svc.Send(BlessingInput{Name: "Alice", From: "a friend", Content: "congrats"})
	require.NoError(t, err)

	assert.Equal(t, 1, blessing.ID)
	assert.True(t, blessing.IsApproved)
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, "Alice", notifier.notified[0].Name)

	latest, err := svc.Latest(10, false)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "congrats", latest[0].Content)
}

func TestLatest_DefaultLimitAndEmpty(t *testing.T) {
	svc, _ := newTestBlessingService(t)

	latest, err := svc.Latest(0, false)
	require.NoError(t, err)
	assert.NotNil(t, latest)
	assert.Empty(t, latest)
}

func TestAdminList_PaginationEnvelope(t *testing.T) {
	svc, _ := newTestBlessingService(t)
	for i := 0; i < 5; i++ {
		_, err := svc.Send(BlessingInput{Name: "Guest", From: "from", Content: "content"})
		require.NoError(t, err)
	}

	page, err := svc.AdminList(2, 2, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PerPage)
	assert.Equal(t, 3, page.Pages)
	assert.Len(t, page.Blessings, 2)
}

func TestAdminList_DefaultsAndApprovedFilter(t *testing.T) {
	svc, _ := newTestBlessingService(t)
	first, err := svc.Send(BlessingInput{Name: "A", From: "f", Content: "x"})
	require.NoError(t, err)
	_, err = svc.Send(BlessingInput{Name: "B", From: "f", Content: "y"})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(first.ID, false))

	approved := true
	page, err := svc.AdminList(0, 0, "", &approved)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PerPage)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Blessings, 1)
	assert.Equal(t, "B", page.Blessings[0].Name)
}

func TestApproveAndDelete_NotFound(t *testing.T) {
	svc, _ := newTestBlessingService(t)

	assert.True(t, apperr.IsNotFound(svc.Approve(99, true)))
	assert.True(t, apperr.IsNotFound(svc.Delete(99)))
}

func TestStats(t *testing.T) {
	svc, _ := newTestBlessingService(t)
	first, err := svc.Send(BlessingInput{Name: "A", From: "f", Content: "x"})
	require.NoError(t, err)
	_, err = svc.Send(BlessingInput{Name: "B", From: "f", Content: "y"})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(first.ID, false))

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Pending)
}
