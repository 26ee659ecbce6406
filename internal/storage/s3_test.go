package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// stubS3 captures the PutObject input and returns a scripted result.
type stubS3 struct {
	lastInput *s3.PutObjectInput
	err       error
}

func (s *stubS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.lastInput = params
	if s.err != nil {
		return nil, s.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newTestStore(stub *stubS3, publicBaseURL string) *S3Store {
	return &S3Store{
		client:        stub,
		bucket:        "wardrobe-bucket",
		region:        "eu-west-1",
		keyPrefix:     "wardrobe",
		publicBaseURL: publicBaseURL,
	}
}

func TestSave_PutsObjectUnderUserPrefix(t *testing.T) {
	stub := &stubS3{}
	st := newTestStore(stub, "")

	url, err := st.Save(context.Background(), "u1", "image/jpeg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if stub.lastInput == nil {
		t.Fatalf("PutObject not called")
	}
	if aws.ToString(stub.lastInput.Bucket) != "wardrobe-bucket" {
		t.Fatalf("bucket = %q", aws.ToString(stub.lastInput.Bucket))
	}
	key := aws.ToString(stub.lastInput.Key)
	if !strings.HasPrefix(key, "wardrobe/u1/") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("key = %q", key)
	}
	if aws.ToString(stub.lastInput.ContentType) != "image/jpeg" {
		t.Fatalf("content type = %q", aws.ToString(stub.lastInput.ContentType))
	}
	body, _ := io.ReadAll(stub.lastInput.Body)
	if string(body) != "jpeg-bytes" {
		t.Fatalf("body = %q", body)
	}
	want := "https://wardrobe-bucket.s3.eu-west-1.amazonaws.com/" + key
	if url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
}

func TestSave_PrefersPublicBaseURL(t *testing.T) {
	stub := &stubS3{}
	st := newTestStore(stub, "https://cdn.example.com")

	url, err := st.Save(context.Background(), "u1", "image/png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/wardrobe/u1/") {
		t.Fatalf("url = %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q", url)
	}
}

func TestSave_PropagatesPutError(t *testing.T) {
	stub := &stubS3{err: errors.New("denied")}
	st := newTestStore(stub, "")

	if _, err := st.Save(context.Background(), "u1", "image/png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error from PutObject")
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":                 ".jpg",
		"image/jpg":                  ".jpg",
		"image/png":                  ".png",
		"image/webp; charset=binary": ".webp",
		"image/svg+xml":              ".svg",
		"application/pdf":            "",
		"":                           "",
	}
	for in, want := range cases {
		if got := extensionFor(in); got != want {
			t.Fatalf("extensionFor(%q) = %q, want %q", in, got, want)
		}
	}
}
