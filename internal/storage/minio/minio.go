// minio предоставляет реализацию storage.Photos на базе MinIO/S3.
// minio.go - конструктор клиента MinIO: нормализует endpoint,
// настраивает Secure/creds и проверяет наличие целевого бакета.
// photos.go — presigned PUT для фото растений и подтверждение загрузки.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pribylovaa/agrilearn-network/internal/config"
	"github.com/pribylovaa/agrilearn-network/internal/storage"
)

// PhotoStorage — адаптер MinIO для фото растений.
type PhotoStorage struct {
	s3     config.S3Config
	photos config.PhotoConfig
	client *mclient.Client
}

// New создает клиент MinIO и выполняет fail-fast-проверку доступности бакета.
// Схема в endpoint (http/https) определяет Secure; без схемы используется s3.UseSSL.
func New(ctx context.Context, s3 config.S3Config, photos config.PhotoConfig) (*PhotoStorage, error) {
	const op = "storage/minio/New"

	endpoint := s3.Endpoint
	secure := s3.UseSSL

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	endpoint = strings.TrimRight(endpoint, "/")

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(s3.RootUser, s3.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, s3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, s3.Bucket)
	}

	return &PhotoStorage{s3: s3, photos: photos, client: client}, nil
}

var _ storage.Photos = (*PhotoStorage)(nil)
