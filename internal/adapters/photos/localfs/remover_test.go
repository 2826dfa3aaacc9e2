package localfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDeleteIfExists(t *testing.T) {
	root := t.TempDir()
	r, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "luna.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := r.DeleteIfExists(context.Background(), "luna.jpg"); err != nil {
		t.Fatalf("DeleteIfExists: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "luna.jpg")); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}

	// Segunda vez: ya no existe, no es error.
	if err := r.DeleteIfExists(context.Background(), "luna.jpg"); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if err := r.DeleteIfExists(context.Background(), ""); err != nil {
		t.Fatalf("expected empty ref to be ignored, got %v", err)
	}
}

func TestDeleteIfExists_AbsoluteInsideRoot(t *testing.T) {
	root := t.TempDir()
	r, _ := New(root)

	path := filepath.Join(root, "rex.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.DeleteIfExists(context.Background(), path); err != nil {
		t.Fatalf("DeleteIfExists: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed")
	}
}

func TestDeleteIfExists_RejectsOutsideRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "photos")
	r, _ := New(root)

	outside := filepath.Join(base, "keep.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, ref := range []string{"../keep.txt", outside, "."} {
		if err := r.DeleteIfExists(context.Background(), ref); !errors.Is(err, ErrOutsideRoot) {
			t.Fatalf("ref %q: expected ErrOutsideRoot, got %v", ref, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("expected outside file kept: %v", err)
	}
}
