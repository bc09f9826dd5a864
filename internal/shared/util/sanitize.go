package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

const maxFileNameRunes = 128

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName flattens path separators, drops control characters, and
// shortens long names while keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsSpace(r):
			return '_'
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(name))
	s = strings.Trim(s, "_")
	if s == "" {
		return "", ErrInvalidFileName
	}
	if runes := []rune(s); len(runes) > maxFileNameRunes {
		ext := filepath.Ext(s)
		keep := maxFileNameRunes - len([]rune(ext))
		if keep < 1 {
			return "", ErrInvalidFileName
		}
		s = string([]rune(strings.TrimSuffix(s, ext))[:keep]) + ext
	}
	return s, nil
}
