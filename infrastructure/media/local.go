package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/ports"
)

// LocalStore writes media to a directory and returns URLs under a
// configured base. Development stand-in for the S3 store, same
// contract.
type LocalStore struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

var _ ports.MediaStore = (*LocalStore)(nil)

// NewLocalStore creates a directory-backed media store.
func NewLocalStore(dir, baseURL string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Put writes data under a fresh UUID name and returns its URL.
func (s *LocalStore) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	ext, err := checkFormat(filename, data)
	if err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	s.logger.Debug("media stored locally", zap.String("file", name))
	return s.baseURL + "/" + path.Join("media", name), nil
}
