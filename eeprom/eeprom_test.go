package eeprom

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

type failingBacking struct {
	loadErr  error
	storeErr error
}

func (f *failingBacking) Load(context.Context, int) ([]byte, error) { return nil, f.loadErr }
func (f *failingBacking) Store(context.Context, []byte) error        { return f.storeErr }
func (f *failingBacking) Close() error                               { return nil }

func TestBeginFreshBackingReadsErased(t *testing.T) {
	t.Parallel()

	e := New(NewMemory())
	if err := e.Begin(context.Background(), 4); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if got := e.Length(); got != 4 {
		t.Fatalf("Length() = %d, want 4", got)
	}
	for off := 0; off < 4; off++ {
		v, err := e.Read(off)
		if err != nil {
			t.Fatalf("Read(%d) error = %v", off, err)
		}
		if v != Erased {
			t.Fatalf("Read(%d) = %#x, want %#x", off, v, Erased)
		}
	}
}

func TestBeginRejectsInvalidSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1, MaxSize + 1} {
		err := New(NewMemory()).Begin(context.Background(), size)
		if !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("Begin(%d) error = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestReadWriteBeforeBegin(t *testing.T) {
	t.Parallel()

	e := New(NewMemory())
	if _, err := e.Read(0); !errors.Is(err, ErrNotBegun) {
		t.Fatalf("Read() error = %v, want ErrNotBegun", err)
	}
	if err := e.Write(0, 1); !errors.Is(err, ErrNotBegun) {
		t.Fatalf("Write() error = %v, want ErrNotBegun", err)
	}
	if err := e.Commit(context.Background()); !errors.Is(err, ErrNotBegun) {
		t.Fatalf("Commit() error = %v, want ErrNotBegun", err)
	}
}

func TestOffsetOutOfRange(t *testing.T) {
	t.Parallel()

	e := New(NewMemory())
	if err := e.Begin(context.Background(), 1); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := e.Write(1, 9); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Write(1) error = %v, want ErrOutOfRange", err)
	}
	if _, err := e.Read(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Read(-1) error = %v, want ErrOutOfRange", err)
	}
}

func TestCommitPersistsAndUncommittedIsLost(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := NewMemory()

	first := New(mem)
	if err := first.Begin(ctx, 1); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := first.Write(0, 7); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := first.Commit(ctx); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if err := first.Write(0, 9); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	second := New(mem)
	if err := second.Begin(ctx, 1); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	v, err := second.Read(0)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if v != 7 {
		t.Fatalf("Read() = %d, want committed value 7", v)
	}
}

func TestCommitSkipsCleanCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := NewMemory()
	e := New(mem)
	if err := e.Begin(ctx, 1); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := e.Write(0, Erased); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := e.Commit(ctx); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if got := mem.Stores(); got != 0 {
		t.Fatalf("Stores() = %d, want 0 for unchanged cache", got)
	}

	if err := e.Write(0, 3); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := e.End(ctx); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if got := mem.Stores(); got != 1 {
		t.Fatalf("Stores() = %d, want 1", got)
	}
	if got := mem.Snapshot(); !bytes.Equal(got, []byte{3}) {
		t.Fatalf("Snapshot() = %v, want [3]", got)
	}
	if got := e.Length(); got != 0 {
		t.Fatalf("Length() after End = %d, want 0", got)
	}
}

func TestBackingErrorsPropagate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	loadErr := errors.New("flash unreadable")
	if err := New(&failingBacking{loadErr: loadErr}).Begin(ctx, 1); !errors.Is(err, loadErr) {
		t.Fatalf("Begin() error = %v, want load error", err)
	}

	storeErr := errors.New("flash worn out")
	e := New(&failingBacking{storeErr: storeErr})
	if err := e.Begin(ctx, 1); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := e.Write(0, 1); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := e.Commit(ctx); !errors.Is(err, storeErr) {
		t.Fatalf("Commit() error = %v, want store error", err)
	}
}

func TestNewDeferredOpensOnBegin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opens := 0
	mem := NewMemory()
	e := NewDeferred(func() (Backing, error) {
		opens++
		return mem, nil
	})
	if opens != 0 {
		t.Fatalf("opens before Begin = %d, want 0", opens)
	}
	if err := e.Begin(ctx, 1); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := e.Begin(ctx, 1); err != nil {
		t.Fatalf("second Begin() error = %v", err)
	}
	if opens != 1 {
		t.Fatalf("opens = %d, want 1", opens)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestNewDeferredOpenFailureFailsBegin(t *testing.T) {
	t.Parallel()

	openErr := errors.New("locked")
	e := NewDeferred(func() (Backing, error) { return nil, openErr })
	if err := e.Begin(context.Background(), 1); !errors.Is(err, openErr) {
		t.Fatalf("Begin() error = %v, want open error", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close() without backing error = %v", err)
	}
}
