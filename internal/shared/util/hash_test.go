package util

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestOwnerKey(t *testing.T) {
	id := "guest:12345"
	got := OwnerKey(id)
	if got != OwnerKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(got))
	}
	if OwnerKey("") != OwnerKey("anonymous") {
		t.Fatalf("empty owner should share the anonymous namespace")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"resume.pdf":           "resume.pdf",
		" My Resume (v2).docx": "My_Resume_(v2).docx",
		"dir/sub\\cv.pdf":      "dir_sub_cv.pdf",
		"tab\tname\x00.pdf":    "tab_name.pdf",
	}
	for in, want := range cases {
		got, err := SanitizeFileName(in)
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}

	for _, bad := range []string{"", "   ", "../etc/passwd", "//"} {
		if _, err := SanitizeFileName(bad); !errors.Is(err, ErrInvalidFileName) {
			t.Fatalf("expected ErrInvalidFileName for %q, got %v", bad, err)
		}
	}

	long, err := SanitizeFileName(strings.Repeat("a", 300) + ".pdf")
	if err != nil {
		t.Fatalf("long name: %v", err)
	}
	if len(long) != maxFileNameRunes || filepath.Ext(long) != ".pdf" {
		t.Fatalf("expected truncated name keeping extension, got %d chars %q", len(long), filepath.Ext(long))
	}
}
