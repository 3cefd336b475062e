package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"wedcms/internal/apperr"
	"wedcms/internal/assets"
	"wedcms/internal/models"
	"wedcms/internal/providers"
	"wedcms/internal/store"
)

type UploadResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
}

type UploadServiceInterface interface {
	Store(uploadType, originalName string, content io.Reader) (*UploadResult, error)
	StoreBackground(uploadType, oldFile, originalName string, content io.Reader) (*UploadResult, error)
	StoreQRCode(originalName string, content io.Reader) (string, error)
	DeleteFile(filename, uploadType string) error
	DeleteBackground(filename string) error
	DeleteByURL(url string) error
	ListFiles(uploadType string) ([]string, error)
}

type UploadService struct {
	store  *store.Store
	assets *assets.Store
	logger providers.Logger
}

func NewUploadService(st *store.Store, as *assets.Store, logger providers.Logger) UploadServiceInterface {
	return &UploadService{
		store:  st,
		assets: as,
		logger: logger,
	}
}

// uploadFilename reproduces the original naming scheme: the fixed
// couple and QR slots always reuse the same name so re-uploads replace
// the previous image, everything else gets a timestamped name.
func uploadFilename(uploadType, originalName string) string {
	ext := assets.Ext(originalName)
	switch uploadType {
	case "groom":
		return "groom_image." + ext
	case "bride":
		return "bride_image." + ext
	case "groomQR":
		return "groom_qr." + ext
	case "brideQR":
		return "bride_qr." + ext
	case "banner":
		base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
		return fmt.Sprintf("banner_%d_%s.%s", time.Now().Unix(), base, ext)
	default:
		return fmt.Sprintf("%s_%d.%s", uploadType, time.Now().Unix(), ext)
	}
}

func (us *UploadService) Store(uploadType, originalName string, content io.Reader) (*UploadResult, error) {
	if !assets.AllowedFile(originalName) {
		return nil, apperr.New(apperr.KindInvalidInput, "unsupported file format, allowed: png, jpg, jpeg, webp, gif")
	}

	filename := uploadFilename(uploadType, originalName)
	path, size, err := us.assets.Save(uploadType, filename, content)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "store upload", err)
	}

	ext := assets.Ext(filename)
	if err := us.store.RegisterUpload(models.UploadRecord{
		Filename:     filename,
		OriginalName: originalName,
		FilePath:     path,
		FileType:     ext,
		FileSize:     size,
		UploadType:   uploadType,
	}); err != nil {
		return nil, err
	}

	if assets.Optimizable(ext) {
		us.assets.Optimize(path)
		if uploadType == "gallery" {
			us.assets.Thumbnail(path, filename)
		}
	}

	return &UploadResult{
		Filename: filename,
		Path:     "." + assets.PublicPath(uploadType, filename),
		Type:     uploadType,
		Size:     size,
	}, nil
}

// StoreBackground saves a section background, deleting the replaced
// file first when the caller names one.
func (us *UploadService) StoreBackground(uploadType, oldFile, originalName string, content io.Reader) (*UploadResult, error) {
	if !assets.AllowedFile(originalName) {
		return nil, apperr.New(apperr.KindInvalidInput, "unsupported file format, allowed: png, jpg, jpeg, webp, gif")
	}

	if oldFile != "" {
		switch us.assets.Delete("background", oldFile) {
		case assets.Deleted:
			us.logger.Infof(providers.TypeApp, "Deleted old background file %s", oldFile)
		case assets.AlreadyAbsent:
			us.logger.Warnf(providers.TypeApp, "Old background file %s already gone", oldFile)
		}
	}

	ext := assets.Ext(originalName)
	filename := fmt.Sprintf("%s_%s.%s", uploadType, uuid.NewString()[:8], ext)
	path, size, err := us.assets.Save(uploadType, filename, content)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "store background", err)
	}

	if assets.Optimizable(ext) {
		us.assets.Optimize(path)
	}

	return &UploadResult{
		Filename: filename,
		Path:     "." + assets.PublicPath(uploadType, filename),
		Type:     uploadType,
		Size:     size,
	}, nil
}

// StoreQRCode saves an uploaded payment QR image and returns its public
// URL.
func (us *UploadService) StoreQRCode(originalName string, content io.Reader) (string, error) {
	if !assets.AllowedFile(originalName) {
		return "", apperr.New(apperr.KindInvalidInput, "unsupported file format, allowed: png, jpg, jpeg, webp, gif")
	}

	ext := assets.Ext(originalName)
	filename := fmt.Sprintf("qr_%d_%s.%s", time.Now().Unix(), uuid.NewString()[:8], ext)
	if _, _, err := us.assets.Save("qr", filename, content); err != nil {
		return "", apperr.Wrap(apperr.KindStorageFailure, "store QR code", err)
	}
	return assets.PublicPath("qr", filename), nil
}

// DeleteFile removes a named asset and its upload record. A file that
// is already gone counts as success and leaves the record alone.
func (us *UploadService) DeleteFile(filename, uploadType string) error {
	switch us.assets.Delete(uploadType, filename) {
	case assets.AlreadyAbsent:
		us.logger.Warnf(providers.TypeApp, "File %s/%s already gone", uploadType, filename)
		return nil
	case assets.Failed:
		return apperr.Newf(apperr.KindStorageFailure, "could not delete file %s", filename)
	}

	us.logger.Infof(providers.TypeApp, "Deleted file %s/%s", uploadType, filename)
	return us.store.UnregisterUpload(filename, uploadType)
}

func (us *UploadService) DeleteBackground(filename string) error {
	switch us.assets.Delete("background", filename) {
	case assets.Failed:
		return apperr.Newf(apperr.KindStorageFailure, "could not delete background %s", filename)
	case assets.AlreadyAbsent:
		us.logger.Warnf(providers.TypeApp, "Background file %s already gone", filename)
	default:
		us.logger.Infof(providers.TypeApp, "Deleted background file %s", filename)
	}
	return nil
}

// DeleteByURL removes an asset referenced by its public URL.
func (us *UploadService) DeleteByURL(url string) error {
	switch us.assets.DeleteByURL(url) {
	case assets.Deleted:
		return nil
	case assets.AlreadyAbsent:
		return apperr.Newf(apperr.KindNotFound, "file for %s does not exist", url)
	}
	return apperr.Newf(apperr.KindStorageFailure, "could not delete file for %s", url)
}

func (us *UploadService) ListFiles(uploadType string) ([]string, error) {
	files, err := us.assets.List(uploadType)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageFailure, "list files", err)
	}
	return files, nil
}
