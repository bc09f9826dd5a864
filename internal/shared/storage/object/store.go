package object

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidKey = errors.New("invalid storage key")
	ErrNotFound   = errors.New("object not found")
)

// Stored describes an object written by Save.
type Stored struct {
	Key       string `json:"storageKey"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`
}

// ObjectStore saves resume documents and reads them back by storage key.
type ObjectStore interface {
	Save(ctx context.Context, owner, fileName string, r io.Reader) (Stored, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
