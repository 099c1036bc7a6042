package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects below a base directory that is served as static
// files under urlBase.
type LocalStore struct {
	baseDir string
	urlBase string
}

func NewLocalStore(baseDir, urlBase string) *LocalStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if urlBase == "" {
		urlBase = "/static/uploads"
	}
	return &LocalStore{baseDir: baseDir, urlBase: strings.TrimSuffix(urlBase, "/")}
}

func (s *LocalStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	absPath, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.urlBase + "/" + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	absPath, err := s.path(key)
	if err != nil {
		return err
	}
	return os.Remove(absPath)
}

func (s *LocalStore) KeyFromURL(url string) (string, bool) {
	prefix := s.urlBase + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// BaseDir is the directory objects are written to.
func (s *LocalStore) BaseDir() string { return s.baseDir }

// URLBase is the URL prefix the directory is served under.
func (s *LocalStore) URLBase() string { return s.urlBase }

func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", ErrForeignURL
	}
	return filepath.Join(s.baseDir, clean), nil
}
