package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"usdh/internal/domain/apperr"
)

// MinIOConfig configures an S3-compatible bucket.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
}

// MinIOStore keeps blobs in an S3-compatible bucket using the same key layout
// as LocalStore.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

var _ Store = (*MinIOStore)(nil)

// NewMinIOStore connects to the bucket, creating it if it does not exist.
func NewMinIOStore(ctx context.Context, cfg MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}
	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads data to key.
func (s *MinIOStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return apperr.Storage("put object", err)
	}
	return nil
}

// Get downloads the object at key.
func (s *MinIOStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.classify("get object", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.classify("read object", err)
	}
	return data, nil
}

// Delete removes the object at key.
// RemoveObject does not report missing keys, so this checks first.
func (s *MinIOStore) Delete(ctx context.Context, key string) error {
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return s.classify("stat object", err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return s.classify("remove object", err)
	}
	return nil
}

func (s *MinIOStore) classify(op string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotExist
	}
	reason := strings.ToLower(err.Error())
	if strings.Contains(reason, "nosuchkey") || strings.Contains(reason, "not found") {
		return ErrNotExist
	}
	return apperr.Storage(op, err)
}
