package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oseikofi/campusfeed/models"
	"github.com/oseikofi/campusfeed/utils"
)

// PublicPrefix is the URL path under which stored files are served.
const PublicPrefix = "/uploads/"

var (
	// ErrFileTooLarge is returned when an upload exceeds the configured size cap.
	ErrFileTooLarge = errors.New("file too large")
	// ErrUnsupportedType is returned for anything that is not an image upload.
	ErrUnsupportedType = errors.New("only image files are allowed")
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store owns the on-disk upload directory. It saves incoming images under
// unique names and removes files referenced by deleted posts. Removal is
// best-effort: a missing file is not an error, and any other failure is
// logged without affecting the post mutation that triggered it.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed and returns a store
// capped at maxMB per file.
func NewStore(dir string, maxMB int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: int64(maxMB) << 20}, nil
}

// Dir returns the upload directory path, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes an uploaded image to disk under a unique name and returns its
// public URL. The original filename only contributes its extension.
func (s *Store) Save(header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}
	if header.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	dstPath := filepath.Join(s.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	// Re-check the size on the wire; Content-Length can lie.
	lr := &io.LimitedReader{R: src, N: s.maxBytes + 1}
	written, err := io.Copy(dst, lr)
	if err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if written > s.maxBytes {
		_ = os.Remove(dstPath)
		return "", ErrFileTooLarge
	}

	return PublicPrefix + name, nil
}

// Remove deletes the file behind a public upload URL. Idempotent: removing a
// file that is already gone succeeds silently.
func (s *Store) Remove(publicURL string) {
	if publicURL == "" {
		return
	}
	path := filepath.Join(s.dir, filepath.Base(publicURL))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("media cleanup failed for %s: %v", path, err)
		}
	}
}

// RemoveAll cascades removal over the post's image and every reply image.
func (s *Store) RemoveAll(post models.Post) {
	for _, url := range post.ImageURLs() {
		s.Remove(url)
	}
}
