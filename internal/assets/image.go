package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"wedcms/internal/providers"
)

var optimizableExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "webp": true,
}

// Optimizable reports whether the extension is worth re-encoding.
// Animated gifs are left alone.
func Optimizable(ext string) bool {
	return optimizableExtensions[ext]
}

// Optimize re-encodes an image in place: downscaled to the configured
// max width when wider, always saved as JPEG quality 85. Failures are
// logged and swallowed; the unoptimized original stays usable.
func (s *Store) Optimize(path string) {
	img, err := decodeFile(path)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to optimize image %s: %s", path, err)
		return
	}

	bounds := img.Bounds()
	if bounds.Dx() > s.maxWidth {
		ratio := float64(s.maxWidth) / float64(bounds.Dx())
		height := int(float64(bounds.Dy()) * ratio)
		img = scale(img, s.maxWidth, height)
	}

	if err := encodeJPEG(path, img, 85); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to optimize image %s: %s", path, err)
		return
	}
	s.logger.Infof(providers.TypeApp, "Optimized image %s", path)
}

// Thumbnail writes a square center-cropped thumbnail of srcPath into
// the thumbs directory under the same filename.
func (s *Store) Thumbnail(srcPath, filename string) {
	img, err := decodeFile(srcPath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to create thumbnail for %s: %s", srcPath, err)
		return
	}

	img = centerCropSquare(img)
	img = scale(img, s.thumbSize, s.thumbSize)

	thumbDir := filepath.Join(s.dir, "thumbs")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to create thumbs dir: %s", err)
		return
	}

	thumbPath := filepath.Join(thumbDir, filename)
	if err := encodeJPEG(thumbPath, img, 80); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to create thumbnail %s: %s", thumbPath, err)
		return
	}
	s.logger.Infof(providers.TypeApp, "Created thumbnail %s", thumbPath)
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func scale(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}

func centerCropSquare(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == height {
		return img
	}

	side := min(width, height)
	x0 := bounds.Min.X + (width-side)/2
	y0 := bounds.Min.Y + (height-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Copy(dst, image.Point{}, img, crop, xdraw.Over, nil)
	return dst
}

func encodeJPEG(path string, img image.Image, quality int) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: quality}); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
