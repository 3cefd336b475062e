package testutil

import (
	"sync"
	"time"

	"wedcms/internal/models"
	"wedcms/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Dels []string
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	m.Dels = append(m.Dels, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockBackupManager implements backup.ManagerInterface and counts calls.
type MockBackupManager struct {
	mu            sync.Mutex
	SnapshotCalls int
	SnapshotErr   error
	RestoreCalls  []string
	Backups       []models.BackupRecord
}

func (m *MockBackupManager) Snapshot() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCalls++
	return m.SnapshotErr
}

func (m *MockBackupManager) Cleanup() error { return nil }

func (m *MockBackupManager) Restore(filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RestoreCalls = append(m.RestoreCalls, filename)
	return nil
}

func (m *MockBackupManager) List() ([]models.BackupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Backups, nil
}

func (m *MockBackupManager) Stats() (models.BackupStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.BackupStats{TotalBackups: len(m.Backups), MaxBackups: 5}, nil
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu          sync.Mutex
	Requests    int
	CacheHits   int
	CacheMisses int
	Backups     int
	Saves       int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObserveBackupDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Backups++
}

func (m *MockMetrics) IncSavesTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
}
