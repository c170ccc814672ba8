package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"medidocs/internal/config"
)

// minioStore implements BlobStore on an S3-compatible backend (MinIO, AWS
// S3, etc.). The owner namespace becomes an object key prefix. It is safe
// for concurrent use by multiple goroutines.
type minioStore struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates a new S3-compatible blob store backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (BlobStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStore{client: cli, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// Store uploads the content under <ownerID>/<generated key> using streaming
// I/O only. Key collisions are not possible in practice with v4 UUIDs, and
// the bucket is private to this service, so no existence probe is made.
func (m *minioStore) Store(ctx context.Context, ownerID string, r io.Reader, originalName, contentType string, size int64) (BlobInfo, error) {
	if r == nil {
		return BlobInfo{}, fmt.Errorf("%w: no content", ErrInvalidName)
	}
	ext, err := safeExtension(originalName)
	if err != nil {
		return BlobInfo{}, err
	}
	if !validSegment(ownerID) {
		return BlobInfo{}, fmt.Errorf("%w: bad owner id", ErrInvalidName)
	}

	key := ownerID + "_" + uuid.NewString() + ext
	obj := path.Join(ownerID, key)

	info, err := m.client.PutObject(ctx, m.bucket, obj, r, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-filename": path.Base(originalName),
		},
	})
	if err != nil {
		return BlobInfo{}, fmt.Errorf("upload object: %w", err)
	}
	return BlobInfo{Key: key, Size: info.Size, ContentType: contentType}, nil
}

// Load downloads a blob as a ReadCloser along with basic info.
func (m *minioStore) Load(ctx context.Context, ownerID, key string) (io.ReadCloser, BlobInfo, error) {
	obj, err := m.objectName(ownerID, key)
	if err != nil {
		return nil, BlobInfo{}, err
	}
	o, err := m.client.GetObject(ctx, m.bucket, obj, minio.GetObjectOptions{})
	if err != nil {
		return nil, BlobInfo{}, fmt.Errorf("get object: %w", err)
	}
	// Fetch stat to surface missing objects eagerly; avoid reading content
	// into memory.
	st, err := o.Stat()
	if err != nil {
		o.Close()
		if isMissingObject(err) {
			return nil, BlobInfo{}, ErrNotFound
		}
		return nil, BlobInfo{}, fmt.Errorf("stat object: %w", err)
	}
	return o, BlobInfo{Key: key, Size: st.Size, ContentType: st.ContentType}, nil
}

// Delete removes a blob. Removing an absent object is not an error.
func (m *minioStore) Delete(ctx context.Context, ownerID, key string) error {
	obj, err := m.objectName(ownerID, key)
	if err != nil {
		return err
	}
	if err := m.client.RemoveObject(ctx, m.bucket, obj, minio.RemoveObjectOptions{}); err != nil {
		if isMissingObject(err) {
			return nil
		}
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func (m *minioStore) objectName(ownerID, key string) (string, error) {
	if !validSegment(ownerID) || !validSegment(key) {
		return "", ErrNotFound
	}
	return path.Join(ownerID, key), nil
}

func isMissingObject(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
	}
	return false
}
