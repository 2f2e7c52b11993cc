package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidName = errors.New("invalid image name")

// ImageStore keeps employee pictures.
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Delete(ctx context.Context, name string) error
	// URL is where clients fetch name from.
	URL(name string) string
}

// NewImageName returns a unique file name with the given extension.
func NewImageName(ext string) string {
	return uuid.NewString() + "." + strings.TrimPrefix(ext, ".")
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return ErrInvalidName
	}
	return nil
}

// --------------------------------------------------
// Disk
// --------------------------------------------------

type DiskImageStore struct {
	dir       string
	urlPrefix string
}

// NewDiskImageStore creates dir if needed. Files are served under urlPrefix.
func NewDiskImageStore(dir, urlPrefix string) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &DiskImageStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *DiskImageStore) Dir() string {
	return s.dir
}

func (s *DiskImageStore) Save(_ context.Context, name string, data []byte, _ string) error {
	if err := checkName(name); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}

func (s *DiskImageStore) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DiskImageStore) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.urlPrefix + "/" + name
}

var _ ImageStore = (*DiskImageStore)(nil)
