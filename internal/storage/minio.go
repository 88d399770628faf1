package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"blogapi/internal/config"
)

// minioStorage implements Storage on an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// newMinIOOptions builds client options whose transport emits a client span per S3 call.
func newMinIOOptions(cfg config.MinIOConfig) (*minio.Options, error) {
	base, err := minio.DefaultTransport(cfg.UseSSL)
	if err != nil {
		return nil, fmt.Errorf("minio transport: %w", err)
	}
	return &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
		Transport: otelhttp.NewTransport(base,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "minio " + r.Method
			}),
		),
	}, nil
}

// NewMinIO connects to the snapshot bucket, creating it when missing.
func NewMinIO(ctx context.Context, cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	opts, err := newMinIOOptions(cfg)
	if err != nil {
		return nil, err
	}
	cli, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &minioStorage{client: cli, bucket: cfg.Bucket}, nil
}

// Put streams a snapshot to the bucket. Snapshots are immutable, so they are
// served as downloadable attachments and never cached by intermediaries.
func (m *minioStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := checkKey(key); err != nil {
		return ObjectInfo{}, err
	}
	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:        opt.ContentType,
		ContentDisposition: attachment(key),
		CacheControl:       "no-store",
		UserMetadata:       opt.Snapshot.userMetadata(),
	})
	if err != nil {
		return ObjectInfo{}, err
	}

	modified := info.LastModified
	if modified.IsZero() {
		modified = time.Now()
	}
	return ObjectInfo{Key: key, Size: info.Size, ETag: info.ETag, LastModified: modified}, nil
}

// Delete removes a snapshot. Export uses it to drop an upload nobody can reach.
func (m *minioStorage) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

// PresignGet signs a GET URL that downloads the snapshot as a file.
func (m *minioStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	params := url.Values{}
	params.Set("response-content-disposition", attachment(key))
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, params)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func attachment(key string) string {
	return fmt.Sprintf("attachment; filename=%q", path.Base(key))
}
