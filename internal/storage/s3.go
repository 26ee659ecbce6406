// Package storage persists uploaded wardrobe photos in S3 and hands back a
// public URL that the rest of the pipeline (classification, catalog rows)
// treats as the item's canonical image location.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-wardrobe-backend/internal/config"
)

// s3API is the subset of the S3 client used by S3Store. Tests substitute a
// stub implementation.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes images to a single bucket under
// <prefix>/<userID>/<uuid>.<ext> and returns a public URL for each object.
type S3Store struct {
	client s3API

	bucket        string
	region        string
	keyPrefix     string
	publicBaseURL string
}

// NewS3Store builds an S3Store from the ambient AWS credential chain
// (environment, shared config, instance role).
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &S3Store{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		keyPrefix:     cfg.KeyPrefix,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// Save uploads the image bytes and returns the object's public URL. The key
// embeds the owner so per-user cleanup stays a prefix operation.
func (st *S3Store) Save(ctx context.Context, userID, contentType string, r io.Reader) (string, error) {
	key := st.objectKey(userID, contentType)

	// PutObject with an unseekable body needs the bytes up front anyway, so
	// buffer once here.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}

	_, err = st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", st.bucket).Str("key", key).Msg("s3 put failed")
		return "", fmt.Errorf("uploading image: %w", err)
	}

	return st.publicURL(key), nil
}

// objectKey builds <prefix>/<userID>/<uuid>.<ext>; the extension is derived
// from the MIME subtype.
func (st *S3Store) objectKey(userID, contentType string) string {
	ext := extensionFor(contentType)
	name := uuid.NewString() + ext
	if st.keyPrefix == "" {
		return userID + "/" + name
	}
	return st.keyPrefix + "/" + userID + "/" + name
}

// publicURL maps an object key to its public URL, preferring the configured
// CDN/base URL over the regional bucket endpoint.
func (st *S3Store) publicURL(key string) string {
	if st.publicBaseURL != "" {
		return st.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", st.bucket, st.region, key)
}

// extensionFor derives a file extension from an image MIME type. Unknown
// subtypes fall back to the subtype itself so the key stays informative.
func extensionFor(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	sub := strings.TrimPrefix(ct, "image/")
	if sub == ct || sub == "" {
		return ""
	}
	// strip parameters like "; charset=..."
	if i := strings.IndexByte(sub, ';'); i >= 0 {
		sub = strings.TrimSpace(sub[:i])
	}
	switch sub {
	case "jpeg", "jpg":
		return ".jpg"
	case "svg+xml":
		return ".svg"
	default:
		return "." + sub
	}
}
