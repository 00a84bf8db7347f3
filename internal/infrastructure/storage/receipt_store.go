package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tallyhq/tally/internal/domain/port"
)

// Compile-time interface check
var _ port.ReceiptStore = (*FilesystemReceiptStore)(nil)

// FilesystemReceiptStore writes receipt images under a base directory,
// sharded by year and month, and returns a path-style URL.
type FilesystemReceiptStore struct {
	baseDir string
}

func NewFilesystemReceiptStore(baseDir string) (*FilesystemReceiptStore, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create receipt dir: %w", err)
	}
	return &FilesystemReceiptStore{baseDir: baseDir}, nil
}

func (s *FilesystemReceiptStore) Store(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("receipt data is empty")
	}

	now := time.Now().UTC()
	rel := filepath.Join(now.Format("2006"), now.Format("01"), filepath.Base(name))
	full := filepath.Join(s.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", fmt.Errorf("create receipt subdir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o640); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return "/receipts/" + filepath.ToSlash(rel), nil
}
