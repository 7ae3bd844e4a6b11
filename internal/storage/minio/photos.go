package minio

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"

	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/storage"
)

const keyPrefix = "plant-photos"

// PhotoUploadURL генерирует presigned PUT URL для загрузки фото.
// Ключ имеет вид "plant-photos/<userID>/<uuid>.<ext>"; Content-Type и
// Content-Length клиент обязан передать при PUT, они же проверяются при подтверждении.
func (s *PhotoStorage) PhotoUploadURL(ctx context.Context, userID uuid.UUID, contentType string, contentLength int64) (*models.PhotoUpload, error) {
	const op = "storage/minio/photos/PhotoUploadURL"

	if contentLength <= 0 || contentLength > s.photos.MaxSizeBytes {
		return nil, fmt.Errorf("%s: content length %d: %w", op, contentLength, storage.ErrInvalidArgument)
	}

	if !slices.Contains(s.photos.AllowedContentTypes, contentType) {
		return nil, fmt.Errorf("%s: content type %q: %w", op, contentType, storage.ErrInvalidArgument)
	}

	key := photoKey(userID, contentType)

	u, err := s.client.PresignedPutObject(ctx, s.s3.Bucket, key, s.s3.PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.PhotoUpload{
		UploadURL: u.String(),
		Key:       key,
		Expires:   s.s3.PresignTTL,
		RequiredHeaders: map[string]string{
			"Content-Type":   contentType,
			"Content-Length": strconv.FormatInt(contentLength, 10),
		},
	}, nil
}

// CheckPhotoUpload подтверждает факт загрузки по key: объект существует,
// лежит под префиксом пользователя и удовлетворяет ограничениям размера/типа.
func (s *PhotoStorage) CheckPhotoUpload(ctx context.Context, userID uuid.UUID, key string) (string, error) {
	const op = "storage/minio/photos/CheckPhotoUpload"

	if !ownsKey(userID, key) {
		return "", fmt.Errorf("%s: foreign key: %w", op, storage.ErrInvalidArgument)
	}

	info, err := s.client.StatObject(ctx, s.s3.Bucket, key, mclient.StatObjectOptions{})
	if err != nil {
		resp := mclient.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if info.Size <= 0 || info.Size > s.photos.MaxSizeBytes {
		return "", fmt.Errorf("%s: size %d: %w", op, info.Size, storage.ErrInvalidArgument)
	}

	if ct := info.ContentType; ct != "" && !slices.Contains(s.photos.AllowedContentTypes, ct) {
		return "", fmt.Errorf("%s: content type %q: %w", op, ct, storage.ErrInvalidArgument)
	}

	return publicURL(s.s3.PublicBaseURL, key), nil
}

func photoKey(userID uuid.UUID, contentType string) string {
	return path.Join(keyPrefix, userID.String(), uuid.NewString()+extension(contentType))
}

// ownsKey — ключ лежит непосредственно под префиксом пользователя и не содержит "..".
func ownsKey(userID uuid.UUID, key string) bool {
	prefix := keyPrefix + "/" + userID.String() + "/"
	if !strings.HasPrefix(key, prefix) {
		return false
	}

	rest := strings.TrimPrefix(key, prefix)

	return rest != "" && !strings.Contains(rest, "/") && path.Clean(key) == key
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

func publicURL(base, key string) string {
	if base == "" {
		return ""
	}

	return strings.TrimRight(base, "/") + "/" + key
}
