package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedcms/internal/apperr"
)

func TestInsertBlessing_ReturnsID(t *testing.T) {
	s := openTestStore(t)

	id, err := s.InsertBlessing("Alice", "a friend", "congrats!")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id2, err := s.InsertBlessing("Bob", "family", "best wishes")
	require.NoError(t, err)
	assert.Equal(t, 2, id2)
}

func TestLatestBlessings_ApprovedFilter(t *testing.T) {
	s := openTestStore(t)
	id1, err := s.InsertBlessing("Alice", "friend", "one")
	require.NoError(t, err)
	_, err = s.InsertBlessing("Bob", "friend", "two")
	require.NoError(t, err)
	require.NoError(t, s.SetBlessingApproved(id1, false))

	approved, err := s.LatestBlessings(10, true)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Bob", approved[0].Name)

	all, err := s.LatestBlessings(10, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearchBlessings_Paging(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		_, err := s.InsertBlessing(fmt.Sprintf("Guest%d", i), "from", "content")
		require.NoError(t, err)
	}

	page1, total, err := s.SearchBlessings(1, 2, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page1, 2)

	page3, total, err := s.SearchBlessings(3, 2, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page3, 1)
}

func TestSearchBlessings_TextSearch(t *testing.T) {
	s := openTestStore(t)
	_, err := s.InsertBlessing("Alice", "friend", "have a great wedding")
	require.NoError(t, err)
	_, err = s.InsertBlessing("Bob", "friend", "cheers")
	require.NoError(t, err)

	results, total, err := s.SearchBlessings(1, 10, "wedding", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "Alice", results[0].Name)

	// Name matches too.
	results, _, err = s.SearchBlessings(1, 10, "Bob", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bob", results[0].Name)
}

func TestBlessingStats(t *testing.T) {
	s := openTestStore(t)
	id1, err := s.InsertBlessing("A", "f", "x")
	require.NoError(t, err)
	_, err = s.InsertBlessing("B", "f", "y")
	require.NoError(t, err)
	require.NoError(t, s.SetBlessingApproved(id1, false))

	stats, err := s.BlessingStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Pending)
}

func TestSetBlessingApproved_NotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.SetBlessingApproved(99, true)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteBlessing(t *testing.T) {
	s := openTestStore(t)
	id, err := s.InsertBlessing("A", "f", "x")
	require.NoError(t, err)

	require.NoError(t, s.DeleteBlessing(id))
	assert.True(t, apperr.IsNotFound(s.DeleteBlessing(id)))
}

func TestTelegramConfig_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	cfg, err := s.GetTelegramConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.BotToken)

	cfg.BotToken = "123:abc"
	cfg.ChatID = "-100"
	cfg.Enabled = true
	require.NoError(t, s.PutTelegramConfig(cfg))

	got, err := s.GetTelegramConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
