package controllers

import (
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"wedcms/internal/apperr"
	"wedcms/internal/models"
	"wedcms/internal/providers"
	"wedcms/internal/services"
)

const siteDataCacheKey = "site:data"

type ApiController struct {
	logger  providers.Logger
	service services.SiteServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.SiteServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (interface{}, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, err)
		return
	}

	gson, err := json.Marshal(envelope{Success: true, Data: result})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetData serves the normalized aggregate snapshot.
func (ac *ApiController) GetData(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, siteDataCacheKey, func() (interface{}, error) {
		return ac.service.LoadData()
	})
}

// SaveData merges a partial update into the stored snapshot and returns
// the merged result.
func (ac *ApiController) SaveData(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var update models.SiteData
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "decode update", err))
		return
	}

	merged, err := ac.service.SaveAll(update)
	if err != nil {
		writeError(w, err)
		return
	}

	ac.cache.Del(siteDataCacheKey)
	writeSuccess(w, http.StatusOK, "Data saved", merged)
}

func (ac *ApiController) GetSection(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("section")
	value, err := ac.service.GetSection(key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", value)
}

func (ac *ApiController) SaveSection(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("section")
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var value interface{}
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "decode section", err))
		return
	}

	if err := ac.service.PutSection(key, value); err != nil {
		writeError(w, err)
		return
	}

	ac.cache.Del(siteDataCacheKey)
	writeSuccess(w, http.StatusOK, "Section "+key+" saved", nil)
}

// Export serves the stored snapshot verbatim, for download.
func (ac *ApiController) Export(w http.ResponseWriter, r *http.Request) {
	data, err := ac.service.RawExport()
	if err != nil {
		writeError(w, err)
		return
	}

	gson, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="wedding-data.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Import replaces the snapshot with an uploaded JSON document.
func (ac *ApiController) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "file field is required", err))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "read import file", err))
		return
	}

	var data models.SiteData
	if err := json.Unmarshal(raw, &data); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "import file is not valid JSON", err))
		return
	}

	if err := ac.service.SaveData(data); err != nil {
		writeError(w, err)
		return
	}

	ac.cache.Del(siteDataCacheKey)
	ac.logger.Infof(providers.TypeApp, "Imported %d sections", len(data))
	writeSuccess(w, http.StatusOK, "Data imported", nil)
}
