package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/doclane/ragapi/internal/config"
	"github.com/doclane/ragapi/pkg/logger_i"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotFound is returned when the named object does not exist.
var ErrNotFound = os.ErrNotExist

// Fetcher is the byte-fetch capability the ingestion trigger consumes.
type Fetcher interface {
	GetObject(ctx context.Context, bucket string, key string) ([]byte, error)
}

var logger *logger_i.Logger
var storeInstance *Store
var once sync.Once

// Store fetches uploaded documents from MinIO or any S3-compatible object
// storage.
type Store struct {
	client *minio.Client
}

func GetMinioStore() *Store {
	once.Do(func() {
		logger = logger_i.NewLogger("BlobStore")

		endpoint := os.Getenv("MINIO_ENDPOINT")
		if endpoint == "" {
			endpoint = config.MinioEndpoint
		}

		client, err := minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(config.MinioAccessKey(), config.MinioSecretKey(), ""),
			Secure: config.MinioUseSSL,
		})
		if err != nil {
			logger.Error("could not instantiate minio client", "error", err)
			return
		}
		storeInstance = &Store{client: client}
		logger.Info("Blob store client created", "endpoint", endpoint)
	})

	if storeInstance == nil {
		return nil
	}
	return &Store{client: storeInstance.client}
}

func (s *Store) GetObject(ctx context.Context, bucket string, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching s3://%s/%s: %w", bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading s3://%s/%s: %w", bucket, key, err)
	}

	logger.Debug("Fetched object", "bucket", bucket, "key", key, "bytes", len(data))
	return data, nil
}

var _ Fetcher = (*Store)(nil)
