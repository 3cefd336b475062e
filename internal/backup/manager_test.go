package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedcms/internal/apperr"
	"wedcms/internal/store"
	"wedcms/internal/structures"
	"wedcms/internal/testutil"
)

func newTestManager(t *testing.T, compress bool) (ManagerInterface, *store.Store, *structures.Config) {
	t.Helper()
	dir := t.TempDir()

	st, err := store.Open(filepath.Join(dir, "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	conf := &structures.Config{
		Backup: structures.BackupConfig{
			Dir:      filepath.Join(dir, "backups"),
			Retain:   5,
			Compress: compress,
		},
	}

	m := NewManager(st, conf, &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})
	return m, st, conf
}

func TestSnapshot_CreatesFileAndRecord(t *testing.T) {
	m, _, conf := newTestManager(t, false)

	require.NoError(t, m.Snapshot())

	records, err := m.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Positive(t, records[0].Size)

	_, err = os.Stat(filepath.Join(conf.Backup.Dir, records[0].Filename))
	assert.NoError(t, err)
}

func TestSnapshot_RetentionKeepsNewestFive(t *testing.T) {
	m, _, conf := newTestManager(t, false)

	var filenames []string
	for i := 0; i < 7; i++ {
		require.NoError(t, m.Snapshot())
		records, err := m.List()
		require.NoError(t, err)
		filenames = append(filenames, records[0].Filename)
		time.Sleep(5 * time.Millisecond)
	}

	records, err := m.List()
	require.NoError(t, err)
	require.Len(t, records, 5)

	// Newest first, and the two oldest files are gone from disk.
	assert.Equal(t, filenames[6], records[0].Filename)
	assert.Equal(t, filenames[2], records[4].Filename)
	for _, old := range filenames[:2] {
		_, err := os.Stat(filepath.Join(conf.Backup.Dir, old))
		assert.True(t, os.IsNotExist(err))
	}
}

func TestCleanup_NoBackups(t *testing.T) {
	m, _, _ := newTestManager(t, false)

	assert.NoError(t, m.Cleanup())
}

func TestRestore_UnknownBackup(t *testing.T) {
	m, _, _ := newTestManager(t, false)

	err := m.Restore("wedding-db_never_existed.db")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRestore_RoundTrip(t *testing.T) {
	m, st, _ := newTestManager(t, false)
	require.NoError(t, st.PutSection("story", []byte(`[{"title":"before"}]`)))
	require.NoError(t, m.Snapshot())

	records, err := m.List()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	backupName := records[0].Filename

	require.NoError(t, st.PutSection("story", []byte(`[{"title":"after"}]`)))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, m.Restore(backupName))

	raw, err := st.GetSection("story")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"before"}]`, string(raw))
}

func TestSnapshot_MissingDatabaseIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "data", "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "data")))

	conf := &structures.Config{
		Backup: structures.BackupConfig{Dir: filepath.Join(dir, "backups"), Retain: 5},
	}
	m := NewManager(st, conf, &testutil.MockCompressor{}, &testutil.MockLogger{}, &testutil.MockMetrics{})

	require.NoError(t, m.Snapshot())
	records, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSnapshotAndRestore_Compressed(t *testing.T) {
	m, st, _ := newTestManager(t, true)
	require.NoError(t, st.PutSection("story", []byte(`[{"title":"zipped"}]`)))
	require.NoError(t, m.Snapshot())

	records, err := m.List()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.True(t, strings.HasSuffix(records[0].Filename, ".zst"))

	require.NoError(t, st.PutSection("story", []byte(`[]`)))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, m.Restore(records[0].Filename))

	raw, err := st.GetSection("story")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"zipped"}]`, string(raw))
}

func TestStats(t *testing.T) {
	m, _, _ := newTestManager(t, false)
	require.NoError(t, m.Snapshot())
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, m.Snapshot())

	stats, err := m.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBackups)
	assert.Equal(t, 5, stats.MaxBackups)
	assert.Positive(t, stats.TotalSize)
	assert.Len(t, stats.Recent, 2)
}
