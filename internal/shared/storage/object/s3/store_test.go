package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/sibap-dev/storm/internal/shared/storage/object"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = body
	f.types[*in.Key] = *in.ContentType
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(body)))}, nil
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "owner/file.pdf", want: "owner/file.pdf"},
		{name: "simple prefix", prefix: "resumes", key: "owner/file.pdf", want: "resumes/owner/file.pdf"},
		{name: "prefix trailing slash", prefix: "resumes/", key: "owner/file.pdf", want: "resumes/owner/file.pdf"},
		{name: "prefix and key slashes", prefix: "/resumes/", key: "/owner/file.pdf", want: "resumes/owner/file.pdf"},
		{name: "empty key", prefix: "resumes", key: "", want: "resumes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "/ats/")
	ctx := context.Background()

	stored, err := store.Save(ctx, "user-1", "cv.pdf", strings.NewReader("%PDF-1.7 content"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.HasPrefix(stored.Key, "ats/") {
		t.Fatalf("storage key should not include the bucket prefix: %q", stored.Key)
	}
	if _, ok := fake.objects["ats/"+stored.Key]; !ok {
		t.Fatalf("object not written under prefix, have %v", fake.objects)
	}
	if stored.MimeType != "application/pdf" || stored.SizeBytes != int64(len("%PDF-1.7 content")) {
		t.Fatalf("unexpected stored metadata: %+v", stored)
	}

	rc, err := store.Open(ctx, stored.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "%PDF-1.7 content" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestOpenMapsErrors(t *testing.T) {
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "")
	ctx := context.Background()

	if _, err := store.Open(ctx, "missing.pdf"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Open(ctx, "../x"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}

	fake.getErr = errors.New("boom")
	if _, err := store.Open(ctx, "x.pdf"); err == nil || errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), "us-east-1", "", ""); err == nil {
		t.Fatalf("expected error for empty bucket")
	}
}
