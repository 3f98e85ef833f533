// Package s3 stores photo objects in an S3-compatible bucket (AWS S3 or
// MinIO). URLs are presigned GETs so the bucket can stay private.
package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultURLExpiry = 15 * time.Minute

// Config holds explicit construction parameters. Production deployments set
// these through environment variables via OpenFromEnv.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string // optional; enables a custom endpoint (e.g. MinIO)
	AccessKey string // optional; with SecretKey, overrides the default chain
	SecretKey string
	PathStyle bool
	URLExpiry time.Duration
}

// Store implements blob.Store against a single bucket.
type Store struct {
	client    *s3.Client
	presign   *s3.PresignClient
	bucket    string
	urlExpiry time.Duration
}

// New creates an S3 blob store from Config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = defaultURLExpiry
	}
	return &Store{
		client:    client,
		presign:   s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		urlExpiry: expiry,
	}, nil
}

// OpenFromEnv constructs an S3 store from process environment.
//
// Environment variables:
//
//	CRAGBOARD_BLOB_S3_BUCKET=<bucket> (required)
//	CRAGBOARD_BLOB_S3_REGION=<region> (default us-east-1)
//	CRAGBOARD_BLOB_S3_ENDPOINT=<url> (optional, for MinIO)
//	CRAGBOARD_BLOB_S3_ACCESS_KEY / CRAGBOARD_BLOB_S3_SECRET_KEY (optional;
//	  both set means static credentials, otherwise the AWS default chain)
//	CRAGBOARD_BLOB_S3_PATH_STYLE=true|false (default false)
func OpenFromEnv(ctx context.Context) (*Store, error) {
	bucket := os.Getenv("CRAGBOARD_BLOB_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("CRAGBOARD_BLOB_S3_BUCKET required for s3 driver")
	}
	return New(ctx, Config{
		Bucket:    bucket,
		Region:    os.Getenv("CRAGBOARD_BLOB_S3_REGION"),
		Endpoint:  os.Getenv("CRAGBOARD_BLOB_S3_ENDPOINT"),
		AccessKey: os.Getenv("CRAGBOARD_BLOB_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("CRAGBOARD_BLOB_S3_SECRET_KEY"),
		PathStyle: strings.EqualFold(os.Getenv("CRAGBOARD_BLOB_S3_PATH_STYLE"), "true"),
	})
}

// Put stores the object under key, overwriting any previous version.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	input := &s3.PutObjectInput{Bucket: &s.bucket, Key: &key, Body: r}
	if contentType != "" {
		input.ContentType = &contentType
	}
	_, err := s.client.PutObject(ctx, input)
	return err
}

// Delete removes the object. S3 delete is already idempotent.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key})
	return err
}

// URL returns a presigned GET URL for the object.
func (s *Store) URL(ctx context.Context, key string) (string, error) {
	out, err := s.presign.PresignGetObject(ctx,
		&s3.GetObjectInput{Bucket: &s.bucket, Key: &key},
		func(po *s3.PresignOptions) { po.Expires = s.urlExpiry },
	)
	if err != nil {
		return "", err
	}
	return out.URL, nil
}
