package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/smith-matt-7272/recipe-app-api/internal/errors"
)

// extensions by sniffed content type; anything else is rejected.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// ImageStore persists uploaded recipe images on the local filesystem
// under a single directory, one randomly named file per image.
type ImageStore struct {
	dir string
}

// NewImageStore creates the upload directory if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save sniffs the payload's content type and, if it is an image, writes
// it to a new file and returns the stored path. Non-image payloads fail
// with errors.ErrNotAnImage before anything touches disk.
func (s *ImageStore) Save(src io.Reader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	ext, ok := imageExtensions[sniffContentType(head)]
	if !ok {
		return "", apperrors.ErrNotAnImage
	}

	path := filepath.Join(s.dir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.Write(head); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path, nil
}

// Remove deletes a stored image. A missing file is not an error: the
// row may reference an image that was cleaned up out of band.
func (s *ImageStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

// sniffContentType strips any parameter suffix DetectContentType appends.
func sniffContentType(head []byte) string {
	ct := http.DetectContentType(head)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return ct
}
