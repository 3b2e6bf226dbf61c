package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field, filename, content string) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	file, header, err := req.FormFile(field)
	require.NoError(t, err)
	return file, header
}

func TestNewCreatesCategoryDirectories(t *testing.T) {
	base := t.TempDir()
	_, err := New(base)
	require.NoError(t, err)

	for _, cat := range []Category{CategoryAudio, CategoryImages, CategoryDocuments} {
		info, err := os.Stat(filepath.Join(base, string(cat)))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestSaveAndRemove(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	file, header := multipartFile(t, "audio", "track.mp3", "fake audio bytes")
	defer file.Close()

	relPath, err := store.Save(file, header, CategoryAudio)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "audio/"))
	assert.True(t, strings.HasSuffix(relPath, ".mp3"))

	content, err := os.ReadFile(store.Path(relPath))
	require.NoError(t, err)
	assert.Equal(t, "fake audio bytes", string(content))

	require.NoError(t, store.Remove(relPath))
	_, err = os.Stat(store.Path(relPath))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove("audio/never-existed.mp3"))
	assert.NoError(t, store.Remove(""))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	file1, header1 := multipartFile(t, "audio", "track.mp3", "one")
	defer file1.Close()
	file2, header2 := multipartFile(t, "audio", "track.mp3", "two")
	defer file2.Close()

	path1, err := store.Save(file1, header1, CategoryAudio)
	require.NoError(t, err)
	path2, err := store.Save(file2, header2, CategoryAudio)
	require.NoError(t, err)

	assert.NotEqual(t, path1, path2)
}

func TestValidateAudioFile(t *testing.T) {
	_, good := multipartFile(t, "audio", "song.mp3", "x")
	assert.NoError(t, ValidateAudioFile(good))

	_, wrongExt := multipartFile(t, "audio", "song.exe", "x")
	assert.Error(t, ValidateAudioFile(wrongExt))

	_, tooBig := multipartFile(t, "audio", "song.wav", "x")
	tooBig.Size = 51 << 20
	assert.Error(t, ValidateAudioFile(tooBig))
}

func TestValidateImageFile(t *testing.T) {
	_, good := multipartFile(t, "image", "pic.png", "x")
	assert.NoError(t, ValidateImageFile(good))

	_, wrongExt := multipartFile(t, "image", "pic.bmp", "x")
	assert.Error(t, ValidateImageFile(wrongExt))

	_, tooBig := multipartFile(t, "image", "pic.jpg", "x")
	tooBig.Size = 11 << 20
	assert.Error(t, ValidateImageFile(tooBig))
}
