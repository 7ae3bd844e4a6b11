package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/storage"
)

// PresignPhoto выдаёт presigned PUT для загрузки фото растения.
func (s *Service) PresignPhoto(ctx context.Context, userID uuid.UUID, contentType string, contentLength int64) (*models.PhotoUpload, error) {
	const op = "service.photos.PresignPhoto"

	if s.photos == nil {
		return nil, fmt.Errorf("%s: photo storage: %w", op, ErrUnavailable)
	}

	up, err := s.photos.PhotoUploadURL(ctx, userID, contentType, contentLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapPhotoErr(err))
	}

	return up, nil
}

// ConfirmPhoto подтверждает загрузку объекта по ключу.
// Ключи вне префикса пользователя отклоняются (ErrInvalidArgument).
func (s *Service) ConfirmPhoto(ctx context.Context, userID uuid.UUID, key string) (string, error) {
	const op = "service.photos.ConfirmPhoto"

	if s.photos == nil {
		return "", fmt.Errorf("%s: photo storage: %w", op, ErrUnavailable)
	}

	if key == "" {
		return "", fmt.Errorf("%s: key is required: %w", op, ErrInvalidArgument)
	}

	publicURL, err := s.photos.CheckPhotoUpload(ctx, userID, key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapPhotoErr(err))
	}

	return publicURL, nil
}

func mapPhotoErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrInvalidArgument):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}
