package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
)

type filesystem struct {
	cfg    *config.StorageConfig
	logger *slog.Logger
}

// NewFilesystem creates a storage system backed by the local filesystem.
func NewFilesystem(cfg *config.StorageConfig, logger *slog.Logger) System {
	return &filesystem{
		cfg:    cfg,
		logger: logger.With("system", "storage"),
	}
}

func (s *filesystem) Start(lc *lifecycle.Coordinator) error {
	if err := os.MkdirAll(s.cfg.BasePath, 0o755); err != nil {
		return fmt.Errorf("create storage root: %w", err)
	}

	s.logger.Info("storage ready", "root", s.cfg.BasePath)
	return nil
}

func (s *filesystem) Store(ctx context.Context, key string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full, err := s.fullPath(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write content: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", fmt.Errorf("finalize file: %w", err)
	}

	return key, nil
}

func (s *filesystem) Retrieve(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full, err := s.fullPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(full)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, ErrNotFound
		case errors.Is(err, fs.ErrPermission):
			return nil, ErrPermissionDenied
		default:
			return nil, fmt.Errorf("open file: %w", err)
		}
	}

	return file, nil
}

func (s *filesystem) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := s.fullPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case errors.Is(err, fs.ErrPermission):
			return ErrPermissionDenied
		default:
			return fmt.Errorf("remove file: %w", err)
		}
	}

	// Clean up empty parent directories inside the root.
	dir := filepath.Dir(full)
	root := filepath.Clean(s.cfg.BasePath)
	for dir != root {
		if err := os.Remove(dir); err != nil {
			break
		}
		dir = filepath.Dir(dir)
	}

	return nil
}

// fullPath resolves a key against the storage root, rejecting keys that
// would escape it.
func (s *filesystem) fullPath(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", ErrInvalidKey
	}

	return filepath.Join(s.cfg.BasePath, clean), nil
}
