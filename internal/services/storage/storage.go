package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store saves uploaded blobs on the local filesystem and hands back the
// URL path they are served under. It stands in for the hosted blob store
// the mobile app used to upload photos to.
type Store struct {
	dir string
}

// New creates the upload directory if needed and returns a Store over it
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the blob under the owner's folder and returns its URL path,
// e.g. /uploads/<owner>/1700000000000.jpg.
func (s *Store) Save(ownerID, ext string, r io.Reader) (string, error) {
	if ext == "" {
		ext = ".bin"
	}
	ownerDir := filepath.Join(s.dir, ownerID)
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create owner dir: %w", err)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext)
	path := filepath.Join(ownerDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + ownerID + "/" + name, nil
}

// Delete removes the blob behind a URL previously returned by Save.
// Unknown URLs are ignored so callers can pass photo URLs blindly.
func (s *Store) Delete(url string) error {
	rel, ok := strings.CutPrefix(url, "/uploads/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
