package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"resume-builder/internal/shared/storage/object"
)

func TestSaveOpenDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	info, err := store.Save(ctx, "user-1", "resume.pdf", "application/pdf", bytes.NewReader([]byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if info.SizeBytes != 8 || info.SHA256 == "" {
		t.Fatalf("unexpected info: %+v", info)
	}

	rc, err := store.Open(ctx, info.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, _ := io.ReadAll(rc)
	rc.Close()
	if string(got) != "%PDF-1.4" {
		t.Fatalf("unexpected content %q", got)
	}

	if err := store.Delete(ctx, info.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, info.Key); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, info.Key); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../outside.pdf"); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
}
