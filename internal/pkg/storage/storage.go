package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tunespace/tunespace-api/pkg/errors"
)

// Category decides which subdirectory an upload lands in. Files are served
// back as static paths under /uploads.
type Category string

const (
	CategoryAudio     Category = "audio"
	CategoryImages    Category = "images"
	CategoryDocuments Category = "documents"
)

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".ogg": true, ".m4a": true, ".flac": true, ".aac": true,
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Store writes uploaded files to local disk under category subdirectories.
type Store struct {
	baseDir string
}

// New creates a Store rooted at baseDir and ensures the category
// subdirectories exist.
func New(baseDir string) (*Store, error) {
	for _, cat := range []Category{CategoryAudio, CategoryImages, CategoryDocuments} {
		if err := os.MkdirAll(filepath.Join(baseDir, string(cat)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &Store{baseDir: baseDir}, nil
}

// BaseDir returns the root upload directory, used when mounting the static route.
func (s *Store) BaseDir() string { return s.baseDir }

// Save writes the file into the category subdirectory under a
// timestamp-uuid name and returns the relative path used in URLs,
// e.g. "audio/1718000000-9f1c....mp3".
func (s *Store) Save(file multipart.File, header *multipart.FileHeader, cat Category) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.NewString(), ext)
	relPath := filepath.Join(string(cat), name)

	dst, err := os.Create(filepath.Join(s.baseDir, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.ToSlash(relPath), nil
}

// Remove deletes a previously saved file. Missing files are not an error.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path resolves a relative upload path to the absolute path on disk.
func (s *Store) Path(relPath string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(relPath))
}

// ValidateAudioFile checks extension and size for audio uploads.
func ValidateAudioFile(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !audioExtensions[ext] {
		return errors.NewValidation("unsupported audio format")
	}
	if header.Size > 50<<20 {
		return errors.NewValidation("audio file exceeds 50MB limit")
	}
	return nil
}

// ValidateImageFile checks extension and size for image uploads.
func ValidateImageFile(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		return errors.NewValidation("unsupported image format")
	}
	if header.Size > 10<<20 {
		return errors.NewValidation("image file exceeds 10MB limit")
	}
	return nil
}
