package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sibap-dev/storm/internal/shared/storage/object"
)

func TestSaveThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	stored, err := store.Save(ctx, "guest:g1", "My Resume.pdf", strings.NewReader("%PDF-1.4 body"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(stored.Key, "_My_Resume.pdf") {
		t.Fatalf("unexpected key %q", stored.Key)
	}
	if stored.SizeBytes != int64(len("%PDF-1.4 body")) {
		t.Fatalf("unexpected size %d", stored.SizeBytes)
	}
	if stored.MimeType != "application/pdf" {
		t.Fatalf("unexpected mime %q", stored.MimeType)
	}

	rc, err := store.Open(ctx, stored.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "%PDF-1.4 body" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestOpenRejectsTraversalAndMissing(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "../secret", "/etc/passwd", "."} {
		if _, err := store.Open(ctx, key); !errors.Is(err, object.ErrInvalidKey) {
			t.Fatalf("expected ErrInvalidKey for %q, got %v", key, err)
		}
	}
	if _, err := store.Open(ctx, "abc/missing.pdf"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveRejectsBadNames(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Save(context.Background(), "u", "../x.pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error for traversal name")
	}
}
