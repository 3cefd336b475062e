package controllers

import (
	"net/http"

	"wedcms/internal/backup"
	"wedcms/internal/models"
	"wedcms/internal/providers"
)

type BackupController struct {
	logger  providers.Logger
	manager backup.ManagerInterface
	cache   providers.CacheProviderInterface
}

func NewBackupController(logger providers.Logger, manager backup.ManagerInterface, cache providers.CacheProviderInterface) *BackupController {
	return &BackupController{
		logger:  logger,
		manager: manager,
		cache:   cache,
	}
}

func (bc *BackupController) List(w http.ResponseWriter, r *http.Request) {
	records, err := bc.manager.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.BackupRecord{}
	}
	writeSuccess(w, http.StatusOK, "", records)
}

func (bc *BackupController) Create(w http.ResponseWriter, r *http.Request) {
	if err := bc.manager.Snapshot(); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Backup created", nil)
}

// Restore swaps the live database for the named backup. The snapshot
// cache is dropped since every section may have changed.
func (bc *BackupController) Restore(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if err := bc.manager.Restore(filename); err != nil {
		writeError(w, err)
		return
	}

	bc.cache.Del(siteDataCacheKey)
	bc.logger.Infof(providers.TypeApp, "Restore from %s requested via API", filename)
	writeSuccess(w, http.StatusOK, "Database restored from "+filename, nil)
}

// Cleanup trims the backup history down to the configured retention.
func (bc *BackupController) Cleanup(w http.ResponseWriter, r *http.Request) {
	if err := bc.manager.Cleanup(); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Backup cleanup complete", nil)
}

func (bc *BackupController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := bc.manager.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", stats)
}
