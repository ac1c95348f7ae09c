package filesystem_storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ports "noders-content-service/internal/domain/ports/output"
)

var errInvalidKey = errors.New("invalid object key")

// Store keeps uploaded objects under a root directory that the HTTP server
// exposes at publicBaseURL.
type Store struct {
	root          string
	publicBaseURL string
	log           ports.Logger
}

func NewStore(root, publicBaseURL string, log ports.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
	}, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit object: %w", err)
	}

	s.log.Debug("Object stored",
		slog.String("key", key),
		slog.String("content_type", contentType),
		slog.Int("bytes", len(data)))
	return s.publicBaseURL + "/" + key, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: %q", errInvalidKey, key)
	}
	return filepath.Join(s.root, clean), nil
}
