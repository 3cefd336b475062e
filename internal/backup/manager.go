// Package backup snapshots the live database before writes, keeps a
// bounded backup history and restores the store from a chosen snapshot.
package backup

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"wedcms/internal/apperr"
	"wedcms/internal/assets"
	"wedcms/internal/backup/interfaces"
	"wedcms/internal/models"
	"wedcms/internal/providers"
	"wedcms/internal/store"
	"wedcms/internal/structures"
)

const backupPrefix = "wedding-db_"

// timestampLayout sorts lexicographically in chronological order. The
// millisecond suffix keeps back-to-back snapshots from colliding.
const timestampLayout = "20060102_150405.000"

type ManagerInterface interface {
	Snapshot() error
	Cleanup() error
	Restore(filename string) error
	List() ([]models.BackupRecord, error)
	Stats() (models.BackupStats, error)
}

type Manager struct {
	store      *store.Store
	conf       *structures.Config
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewManager(st *store.Store, conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ManagerInterface {
	return &Manager{
		store:      st,
		conf:       conf,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

// Snapshot copies the persisted store into the backup directory, records
// the backup and trims the history. Nothing to copy on a fresh install
// is not an error; the caller's write proceeds.
func (m *Manager) Snapshot() error {
	if _, err := os.Stat(m.store.Path()); os.IsNotExist(err) {
		m.logger.Warnf(providers.TypeApp, "Skipping backup, database file does not exist yet")
		return nil
	}

	start := time.Now()
	if err := os.MkdirAll(m.conf.Backup.Dir, 0755); err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "create backup dir", err)
	}

	filename := backupPrefix + time.Now().Format(timestampLayout) + ".db"
	if m.conf.Backup.Compress {
		filename += ".zst"
	}
	destPath := filepath.Join(m.conf.Backup.Dir, filename)
	// Same-instant snapshots overwrite, matching upsert semantics elsewhere.
	_ = os.Remove(destPath)

	if err := m.writeSnapshot(destPath); err != nil {
		return err
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "stat backup file", err)
	}
	if err := m.store.InsertBackup(filename, destPath, info.Size()); err != nil {
		return err
	}

	m.metrics.ObserveBackupDuration(time.Since(start))
	m.logger.Infof(providers.TypeApp, "Backup created at %s", destPath)

	return m.Cleanup()
}

func (m *Manager) writeSnapshot(destPath string) error {
	if !m.conf.Backup.Compress {
		return m.store.Snapshot(destPath)
	}

	tmp := destPath + ".raw"
	if err := m.store.Snapshot(tmp); err != nil {
		return err
	}
	defer os.Remove(tmp)

	raw, err := os.ReadFile(tmp)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "read snapshot", err)
	}
	compressed, err := m.compressor.Compress(raw)
	if err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "compress snapshot", err)
	}
	if err := os.WriteFile(destPath, compressed, 0644); err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "write compressed snapshot", err)
	}
	return nil
}

// Cleanup deletes every backup beyond the configured retention, oldest
// first. Safe to call at any time, including with no backups at all.
func (m *Manager) Cleanup() error {
	records, err := m.store.ListBackups(0)
	if err != nil {
		return err
	}

	retain := m.conf.Backup.Retain
	if retain <= 0 {
		retain = 5
	}
	if len(records) <= retain {
		return nil
	}

	for _, record := range records[retain:] {
		outcome, removeErr := assets.RemoveFile(record.FilePath)
		switch outcome {
		case assets.Deleted:
			m.logger.Infof(providers.TypeApp, "Deleted backup file %s", record.Filename)
		case assets.AlreadyAbsent:
			m.logger.Warnf(providers.TypeApp, "Backup file %s already gone", record.Filename)
		case assets.Failed:
			m.logger.Errorf(providers.TypeApp, "Failed to delete backup file %s: %s", record.Filename, removeErr)
		}

		if err := m.store.DeleteBackupRecord(record.ID); err != nil {
			return err
		}
	}

	m.logger.Infof(providers.TypeApp, "Cleaned up %d old backups, retaining %d", len(records)-retain, retain)
	return nil
}

// Restore overwrites the live store with the named backup, taking a
// fresh safety snapshot of the current state first.
func (m *Manager) Restore(filename string) error {
	backupPath := filepath.Join(m.conf.Backup.Dir, filepath.Base(filename))
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return apperr.Newf(apperr.KindNotFound, "backup %s does not exist", filename)
	}

	if err := m.Snapshot(); err != nil {
		return err
	}

	srcPath := backupPath
	if strings.HasSuffix(backupPath, ".zst") {
		compressed, err := os.ReadFile(backupPath)
		if err != nil {
			return apperr.Wrap(apperr.KindStorageFailure, "read backup", err)
		}
		raw, err := m.compressor.Decompress(compressed)
		if err != nil {
			return apperr.Wrap(apperr.KindStorageFailure, "decompress backup", err)
		}
		tmp := backupPath + ".raw"
		if err := os.WriteFile(tmp, raw, 0644); err != nil {
			return apperr.Wrap(apperr.KindStorageFailure, "write decompressed backup", err)
		}
		defer os.Remove(tmp)
		srcPath = tmp
	}

	if err := m.store.RestoreFrom(srcPath); err != nil {
		return apperr.Wrap(apperr.KindStorageFailure, "restore database", err)
	}
	m.logger.Infof(providers.TypeApp, "Restored database from backup %s", filename)
	return nil
}

func (m *Manager) List() ([]models.BackupRecord, error) {
	return m.store.ListBackups(0)
}

func (m *Manager) Stats() (models.BackupStats, error) {
	count, size, err := m.store.BackupTotals()
	if err != nil {
		return models.BackupStats{}, err
	}
	recent, err := m.store.ListBackups(5)
	if err != nil {
		return models.BackupStats{}, err
	}
	if recent == nil {
		recent = []models.BackupRecord{}
	}

	retain := m.conf.Backup.Retain
	if retain <= 0 {
		retain = 5
	}
	return models.BackupStats{
		TotalBackups: count,
		TotalSize:    size,
		Recent:       recent,
		MaxBackups:   retain,
	}, nil
}
