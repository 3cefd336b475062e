package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"wedcms/internal/apperr"
	"wedcms/internal/providers"
	"wedcms/internal/services"
)

type UploadController struct {
	logger  providers.Logger
	service services.UploadServiceInterface
	cache   providers.CacheProviderInterface
}

func NewUploadController(logger providers.Logger, service services.UploadServiceInterface, cache providers.CacheProviderInterface) *UploadController {
	return &UploadController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

// Upload stores one image. The form carries the file plus a type field
// deciding the target category and naming policy.
func (uc *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRequestBodySize); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "parse form", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "file field is required", err))
		return
	}
	defer file.Close()

	uploadType := r.FormValue("type")
	if uploadType == "" {
		uploadType = "general"
	}

	result, err := uc.service.Store(uploadType, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	uc.cache.Del(siteDataCacheKey)
	uc.logger.Infof(providers.TypeApp, "Uploaded %s as %s", header.Filename, result.Filename)
	writeSuccess(w, http.StatusOK, "File uploaded", result)
}

// UploadBackground stores a section background, replacing the previous
// one when old_file names it.
func (uc *UploadController) UploadBackground(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRequestBodySize); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "parse form", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInvalidInput, "file field is required", err))
		return
	}
	defer file.Close()

	uploadType := r.FormValue("type")
	if uploadType == "" {
		writeError(w, apperr.New(apperr.KindInvalidInput, "type field is required"))
		return
	}

	result, err := uc.service.StoreBackground(uploadType, r.FormValue("old_file"), header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	uc.cache.Del(siteDataCacheKey)
	writeSuccess(w, http.StatusOK, "Background uploaded", result)
}

// DeleteImage removes an asset by its public URL.
func (uc *UploadController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.URL == "" {
		writeError(w, apperr.New(apperr.KindInvalidInput, "url is required"))
		return
	}

	if err := uc.service.DeleteByURL(payload.URL); err != nil {
		writeError(w, err)
		return
	}

	uc.cache.Del(siteDataCacheKey)
	writeSuccess(w, http.StatusOK, "Image deleted", nil)
}

func (uc *UploadController) DeleteFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		Filename string `json:"filename"`
		Type     string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Filename == "" {
		writeError(w, apperr.New(apperr.KindInvalidInput, "filename is required"))
		return
	}
	if payload.Type == "" {
		payload.Type = "general"
	}

	if err := uc.service.DeleteFile(payload.Filename, payload.Type); err != nil {
		writeError(w, err)
		return
	}

	uc.cache.Del(siteDataCacheKey)
	writeSuccess(w, http.StatusOK, "File deleted", nil)
}

func (uc *UploadController) DeleteBackground(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeError(w, apperr.New(apperr.KindInvalidInput, "filename is required"))
		return
	}
	if err := uc.service.DeleteBackground(filename); err != nil {
		writeError(w, err)
		return
	}

	uc.cache.Del(siteDataCacheKey)
	writeSuccess(w, http.StatusOK, "Background deleted", nil)
}

func (uc *UploadController) ListFiles(w http.ResponseWriter, r *http.Request) {
	uploadType := r.URL.Query().Get("type")
	if uploadType == "" {
		uploadType = "general"
	}

	files, err := uc.service.ListFiles(uploadType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"files": files, "type": uploadType})
}
