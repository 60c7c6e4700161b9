package staging

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig configures the MinIO-backed staging area.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioArea stages blobs in a MinIO bucket instead of local disk, for
// deployments where instances don't share a filesystem.
type MinioArea struct {
	client *minio.Client
	bucket string
}

// NewMinioArea connects to MinIO and ensures the staging bucket exists.
func NewMinioArea(cfg MinioConfig) (*MinioArea, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioArea{client: client, bucket: cfg.Bucket}, nil
}

// Stage uploads the stream under a uniquely named staging key.
func (a *MinioArea) Stage(ctx context.Context, r io.Reader, originalName string) (*Handle, error) {
	name := storedName(originalName)
	key := path.Join("staging", name)

	info, err := a.client.PutObject(ctx, a.bucket, key, r, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		UserMetadata: map[string]string{
			"original-name": originalName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stage object: %w", err)
	}

	return &Handle{
		Key:          key,
		StoredName:   name,
		OriginalName: path.Base(originalName),
		Size:         info.Size,
	}, nil
}

// Open returns a reader over the staged object.
func (a *MinioArea) Open(ctx context.Context, h *Handle) (io.ReadCloser, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, h.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open staged object: %w", err)
	}
	return obj, nil
}

// Release removes the staged object. MinIO treats removal of a missing
// object as success, which gives us idempotency for free.
func (a *MinioArea) Release(ctx context.Context, h *Handle) error {
	if err := a.client.RemoveObject(ctx, a.bucket, h.Key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove staged object: %w", err)
	}
	return nil
}
