package services

import (
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"wedcms/internal/apperr"
	"wedcms/internal/backup"
	"wedcms/internal/models"
	"wedcms/internal/providers"
	"wedcms/internal/sitedata"
	"wedcms/internal/store"
)

type SiteServiceInterface interface {
	LoadData() (models.SiteData, error)
	RawExport() (models.SiteData, error)
	SaveData(data models.SiteData) error
	SaveAll(update models.SiteData) (models.SiteData, error)
	GetSection(key string) (interface{}, error)
	PutSection(key string, value interface{}) error
}

type SiteService struct {
	store   *store.Store
	backups backup.ManagerInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	// opsMu serializes load→snapshot→merge→persist. The original system
	// let concurrent saves interleave at section granularity; we trade
	// that behavior for a consistent backup per aggregate write.
	opsMu sync.Mutex
}

func NewSiteService(st *store.Store, backups backup.ManagerInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) SiteServiceInterface {
	return &SiteService{
		store:   st,
		backups: backups,
		logger:  logger,
		metrics: metrics,
	}
}

// LoadData returns the full normalized snapshot. A section whose stored
// JSON no longer parses degrades to an empty object with a warning
// instead of failing the whole read.
func (ss *SiteService) LoadData() (models.SiteData, error) {
	data, err := ss.decodeAll()
	if err != nil {
		return nil, err
	}
	sitedata.Normalize(data)
	sitedata.StripStoryDataURLs(data)
	return data, nil
}

// RawExport returns the stored snapshot as-is, without normalization or
// dataUrl stripping.
func (ss *SiteService) RawExport() (models.SiteData, error) {
	return ss.decodeAll()
}

func (ss *SiteService) decodeAll() (models.SiteData, error) {
	sections, err := ss.store.GetAllSections()
	if err != nil {
		return nil, err
	}

	data := make(models.SiteData, len(sections))
	for key, raw := range sections {
		var value interface{}
		if err := json.Unmarshal(raw, &value); err != nil {
			ss.logger.Warnf(providers.TypeApp, "Malformed JSON in section %s, treating as empty: %s", key, err)
			data[key] = map[string]interface{}{}
			continue
		}
		data[key] = value
	}
	return data, nil
}

// SaveData persists every section of the snapshot, taking a backup
// first. When an upsert fails after earlier ones succeeded the store is
// left partially updated; the whole operation still reports failure.
func (ss *SiteService) SaveData(data models.SiteData) error {
	if err := ss.backups.Snapshot(); err != nil {
		return err
	}

	written := 0
	for key, value := range data {
		if key == "admin" {
			if admin, ok := value.(map[string]interface{}); ok {
				admin["lastUpdate"] = time.Now().Format(time.RFC3339)
			}
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return apperr.Wrap(apperr.KindInvalidInput, "marshal section "+key, err)
		}
		if err := ss.store.PutSection(key, raw); err != nil {
			if written > 0 {
				return apperr.Wrap(apperr.KindPartialWrite, "aggregate save interrupted at section "+key, err)
			}
			return err
		}
		written++
	}

	ss.metrics.IncSavesTotal()
	ss.logger.Infof(providers.TypeApp, "Saved %d sections", written)
	return nil
}

// SaveAll runs the full merge pipeline for a partial update and returns
// the merged snapshot that was persisted.
func (ss *SiteService) SaveAll(update models.SiteData) (models.SiteData, error) {
	ss.opsMu.Lock()
	defer ss.opsMu.Unlock()

	current, err := ss.LoadData()
	if err != nil {
		return nil, err
	}

	merged := sitedata.ApplyUpdate(current, update)
	if err := ss.SaveData(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (ss *SiteService) GetSection(key string) (interface{}, error) {
	raw, err := ss.store.GetSection(key)
	if err != nil {
		return nil, err
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "parse section "+key, err)
	}
	return value, nil
}

// PutSection upserts one section without touching the rest of the
// snapshot. The admin section gets its lastUpdate stamped.
func (ss *SiteService) PutSection(key string, value interface{}) error {
	if key == "admin" {
		if admin, ok := value.(map[string]interface{}); ok {
			admin["lastUpdate"] = time.Now().Format(time.RFC3339)
		}
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return apperr.Wrap(apperr.KindInvalidInput, "marshal section "+key, err)
	}
	return ss.store.PutSection(key, raw)
}
