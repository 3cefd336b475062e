// Package assets stores uploaded files under per-category directories
// and handles image optimization and thumbnails.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"wedcms/internal/providers"
	"wedcms/internal/structures"
)

// DeleteOutcome reports what a best-effort file removal actually did.
// Callers decide whether Failed is fatal or just worth a log line.
type DeleteOutcome int

const (
	Deleted DeleteOutcome = iota
	AlreadyAbsent
	Failed
)

func (o DeleteOutcome) String() string {
	switch o {
	case Deleted:
		return "deleted"
	case AlreadyAbsent:
		return "already_absent"
	}
	return "failed"
}

// RemoveFile deletes path and reports the outcome. A missing file is
// not an error.
func RemoveFile(path string) (DeleteOutcome, error) {
	err := os.Remove(path)
	if err == nil {
		return Deleted, nil
	}
	if os.IsNotExist(err) {
		return AlreadyAbsent, nil
	}
	return Failed, err
}

var allowedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "webp": true, "gif": true,
}

// AllowedFile reports whether the filename carries a supported image
// extension.
func AllowedFile(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return allowedExtensions[ext]
}

// Ext returns the lowercased extension without the dot.
func Ext(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

type Store struct {
	dir       string
	maxWidth  int
	thumbSize int
	logger    providers.Logger
}

func NewStore(conf *structures.Config, logger providers.Logger) *Store {
	maxWidth := conf.Upload.MaxWidth
	if maxWidth <= 0 {
		maxWidth = 1920
	}
	thumbSize := conf.Upload.ThumbSize
	if thumbSize <= 0 {
		thumbSize = 300
	}
	return &Store{
		dir:       conf.Upload.Dir,
		maxWidth:  maxWidth,
		thumbSize: thumbSize,
		logger:    logger,
	}
}

// CategoryDir maps an upload type onto its directory under the asset
// root. Aliases collapse onto shared directories.
func CategoryDir(uploadType string) string {
	switch uploadType {
	case "banner", "gallery", "story", "couple", "event", "background", "thumbs":
		return uploadType
	case "groom", "bride":
		return "couple"
	case "qr", "groomQR", "brideQR":
		return "qr"
	case "story-background", "bigevent-background", "giftregistry-background":
		return "background"
	default:
		return "general"
	}
}

// PublicPath is the URL path under which a stored asset is served.
func PublicPath(uploadType, filename string) string {
	return "/public/images/" + CategoryDir(uploadType) + "/" + filename
}

func (s *Store) categoryPath(uploadType string) string {
	return filepath.Join(s.dir, CategoryDir(uploadType))
}

// Save writes the content to the category directory and returns the
// absolute path and size.
func (s *Store) Save(uploadType, filename string, content io.Reader) (string, int64, error) {
	dir := s.categoryPath(uploadType)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create upload file: %w", err)
	}

	size, err := io.Copy(file, content)
	if err != nil {
		file.Close()
		os.Remove(path)
		return "", 0, fmt.Errorf("write upload file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", 0, err
	}
	return path, size, nil
}

// Delete removes a named asset from its category directory.
func (s *Store) Delete(uploadType, filename string) DeleteOutcome {
	path := filepath.Join(s.categoryPath(uploadType), filepath.Base(filename))
	outcome, err := RemoveFile(path)
	if outcome == Failed {
		s.logger.Errorf(providers.TypeApp, "Failed to delete asset %s: %s", path, err)
	}
	return outcome
}

// DeleteByURL resolves a public image URL back to a file and removes it.
func (s *Store) DeleteByURL(url string) DeleteOutcome {
	var rel string
	switch {
	case strings.HasPrefix(url, "/public/images/"):
		rel = strings.TrimPrefix(url, "/public/images/")
	case strings.HasPrefix(url, "./public/images/"):
		rel = strings.TrimPrefix(url, "./public/images/")
	default:
		rel = filepath.Base(url)
	}

	path := filepath.Join(s.dir, filepath.Clean("/"+rel))
	outcome, err := RemoveFile(path)
	if outcome == Failed {
		s.logger.Errorf(providers.TypeApp, "Failed to delete asset %s: %s", path, err)
	}
	return outcome
}

// List returns the plain filenames inside a category directory. A
// missing directory yields an empty listing.
func (s *Store) List(uploadType string) ([]string, error) {
	entries, err := os.ReadDir(s.categoryPath(uploadType))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list assets: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// Dir exposes the asset root for static file serving.
func (s *Store) Dir() string {
	return s.dir
}
