package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func TestStoreAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "eeprom.db")

	b, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := b.Store(ctx, []byte{42}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := b.Store(ctx, []byte{255}); err != nil {
		t.Fatalf("Store() overwrite error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() again error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx, 1)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, []byte{255}) {
		t.Fatalf("Load() = %v, want [255]", got)
	}
}

func TestLoadEmptyReturnsNothing(t *testing.T) {
	b, err := Open(filepath.Join(t.TempDir(), "eeprom.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer b.Close()

	got, err := b.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load() = %v, want empty", got)
	}
}

func TestLoadTruncatesToSize(t *testing.T) {
	ctx := context.Background()
	b, err := Open(filepath.Join(t.TempDir(), "eeprom.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer b.Close()

	if err := b.Store(ctx, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	got, err := b.Load(ctx, 2)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2}) {
		t.Fatalf("Load() = %v, want [1 2]", got)
	}
}
