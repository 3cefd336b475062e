package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedcms/internal/apperr"
	"wedcms/internal/assets"
	"wedcms/internal/structures"
	"wedcms/internal/testutil"
)

func newTestUploadService(t *testing.T) (UploadServiceInterface, string) {
	t.Helper()
	dir := t.TempDir()
	st := openServiceStore(t)
	conf := &structures.Config{
		Upload: structures.UploadConfig{Dir: dir, MaxWidth: 1920, ThumbSize: 300},
	}
	as := assets.NewStore(conf, &testutil.MockLogger{})
	return NewUploadService(st, as, &testutil.MockLogger{}), dir
}

func TestUpload_RejectsUnsupportedExtension(t *testing.T) {
	svc, _ := newTestUploadService(t)

	_, err := svc.Store("gallery", "notes.txt", strings.NewReader("hi"))
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestUpload_FixedSlotNames(t *testing.T) {
	svc, dir := newTestUploadService(t)

	cases := []struct {
		uploadType string
		wantName   string
		wantDir    string
	}{
		{"groom", "groom_image.png", "couple"},
		{"bride", "bride_image.png", "couple"},
		{"groomQR", "groom_qr.png", "qr"},
		{"brideQR", "bride_qr.png", "qr"},
	}
	for _, tc := range cases {
		t.Run(tc.uploadType, func(t *testing.T) {
			result, err := svc.Store(tc.uploadType, "original.png", strings.NewReader("fake"))
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, result.Filename)
			assert.Equal(t, "./public/images/"+tc.wantDir+"/"+tc.wantName, result.Path)

			_, err = os.Stat(filepath.Join(dir, tc.wantDir, tc.wantName))
			assert.NoError(t, err)
		})
	}
}

func TestUpload_TimestampedNameForOtherTypes(t *testing.T) {
	svc, _ := newTestUploadService(t)

	result, err := svc.Store("gallery", "photo.jpg", strings.NewReader("fake"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Filename, "gallery_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".jpg"))
	assert.Positive(t, result.Size)
}

func TestUpload_FixedSlotReplacesOnReupload(t *testing.T) {
	svc, _ := newTestUploadService(t)

	first, err := svc.Store("groom", "a.png", strings.NewReader("v1"))
	require.NoError(t, err)
	second, err := svc.Store("groom", "b.png", strings.NewReader("v2-longer"))
	require.NoError(t, err)

	assert.Equal(t, first.Filename, second.Filename)

	files, err := svc.ListFiles("groom")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestStoreBackground_DeletesOldFile(t *testing.T) {
	svc, dir := newTestUploadService(t)

	first, err := svc.StoreBackground("hero-background", "", "bg.png", strings.NewReader("v1"))
	require.NoError(t, err)

	second, err := svc.StoreBackground("hero-background", first.Filename, "bg2.png", strings.NewReader("v2"))
	require.NoError(t, err)
	assert.NotEqual(t, first.Filename, second.Filename)

	_, err = os.Stat(filepath.Join(dir, "background", first.Filename))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "background", second.Filename))
	assert.NoError(t, err)
}

func TestStoreQRCode_ReturnsPublicURL(t *testing.T) {
	svc, dir := newTestUploadService(t)

	url, err := svc.StoreQRCode("code.png", strings.NewReader("fake"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/public/images/qr/qr_"))

	filename := filepath.Base(url)
	_, err = os.Stat(filepath.Join(dir, "qr", filename))
	assert.NoError(t, err)
}

func TestDeleteFile(t *testing.T) {
	svc, _ := newTestUploadService(t)
	result, err := svc.Store("gallery", "photo.png", strings.NewReader("fake"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(result.Filename, "gallery"))

	files, err := svc.ListFiles("gallery")
	require.NoError(t, err)
	assert.Empty(t, files)

	// Deleting again is not an error, the file is simply gone.
	assert.NoError(t, svc.DeleteFile(result.Filename, "gallery"))
}

func TestDeleteByURL(t *testing.T) {
	svc, _ := newTestUploadService(t)
	result, err := svc.Store("gallery", "photo.png", strings.NewReader("fake"))
	require.NoError(t, err)

	url := strings.TrimPrefix(result.Path, ".")
	require.NoError(t, svc.DeleteByURL(url))

	err = svc.DeleteByURL(url)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestListFiles_MissingDirectory(t *testing.T) {
	svc, _ := newTestUploadService(t)

	files, err := svc.ListFiles("gallery")
	require.NoError(t, err)
	assert.Empty(t, files)
}
