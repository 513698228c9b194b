// internal/storage/storage.go
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ErrObjectExists reports a non-overwriting put that hit an existing key.
var ErrObjectExists = errors.New("storage: object already exists")

// Uploader is the single storage concern the pipeline has: durable,
// non-overwriting writes with a public URL back.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string // optional, for MinIO or other S3-compatible services
	Region    string
	PublicURL string // CDN or public URL prefix for stored documents
	PathStyle bool   // required for MinIO
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return errors.New("storage: bucket and credentials are required")
	}
	return nil
}

// S3Storage implements Uploader using S3-compatible object storage.
type S3Storage struct {
	client *s3.Client
	cfg    Config
}

// New creates a new S3Storage with the given configuration.
func New(cfg Config) (*S3Storage, error) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Storage{client: s3.New(s3.Options{}, opts...), cfg: cfg}, nil
}

// Upload writes data under key with a conditional put. An existing object
// under the same key is never overwritten; the caller gets ErrObjectExists.
func (s *S3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
		IfNoneMatch:   aws.String("*"),
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return "", ErrObjectExists
		}
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return s.URL(key), nil
}

// URL builds the public URL for a stored key.
func (s *S3Storage) URL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		return strings.TrimSuffix(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

var _ Uploader = (*S3Storage)(nil)
