// Package filestore persists an EEPROM image as a small file.
//
// The image file holds exactly the committed bytes. A sidecar lock file is
// held for the life of the Backing so only one process owns the region.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrLocked is returned by Open when another process owns the image.
var ErrLocked = errors.New("eeprom image is locked by another process")

type Backing struct {
	path string
	lock *os.File
}

func Open(path string) (*Backing, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	lock, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := lockFile(lock); err != nil {
		_ = lock.Close()
		return nil, err
	}

	return &Backing{path: path, lock: lock}, nil
}

func (b *Backing) Load(_ context.Context, size int) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > size {
		data = data[:size]
	}
	return data, nil
}

// Store replaces the image atomically: write a temp file, fsync, rename,
// then fsync the directory so the rename itself is durable.
func (b *Backing) Store(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp image: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp image: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp image: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		cleanup()
		return fmt.Errorf("replace image: %w", err)
	}
	if err := syncDir(dir); err != nil {
		return fmt.Errorf("sync store directory: %w", err)
	}
	return nil
}

func (b *Backing) Close() error {
	if b == nil || b.lock == nil {
		return nil
	}
	err := errors.Join(unlockFile(b.lock), b.lock.Close())
	b.lock = nil
	return err
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
