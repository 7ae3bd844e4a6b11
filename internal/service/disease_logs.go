package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/agrilearn-network/internal/models"
)

// DiseaseLogs возвращает журнал болезней по фильтру.
// Культура и регион сравниваются без учёта регистра, границы дат включительные.
func (s *Service) DiseaseLogs(ctx context.Context, filter models.DiseaseLogFilter) ([]models.DiseaseLog, error) {
	const op = "service.disease_logs.DiseaseLogs"

	filter.Crop = strings.TrimSpace(filter.Crop)
	filter.Region = strings.TrimSpace(filter.Region)

	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return nil, fmt.Errorf("%s: startDate after endDate: %w", op, ErrInvalidArgument)
	}

	logs, err := s.storage.DiseaseLogs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return logs, nil
}

// CreateDiseaseLog добавляет запись в журнал от имени пользователя.
// Пустая дата диагностики означает «сейчас».
func (s *Service) CreateDiseaseLog(ctx context.Context, userID uuid.UUID, in models.NewDiseaseLog) (*models.DiseaseLog, error) {
	const op = "service.disease_logs.CreateDiseaseLog"

	crop := strings.TrimSpace(in.CropName)
	disease := strings.TrimSpace(in.DiseaseName)
	region := strings.TrimSpace(in.Region)

	if crop == "" || disease == "" || region == "" {
		return nil, fmt.Errorf("%s: cropName, diseaseName and region are required: %w", op, ErrInvalidArgument)
	}

	if !in.Severity.Valid() {
		return nil, fmt.Errorf("%s: severity %q: %w", op, in.Severity, ErrInvalidArgument)
	}

	now := s.now().UTC()
	date := in.DiagnosisDate
	if date.IsZero() {
		date = now
	}

	l := &models.DiseaseLog{
		ID:            uuid.New(),
		UserID:        userID,
		CropName:      crop,
		DiseaseName:   disease,
		Severity:      in.Severity,
		Region:        region,
		DiagnosisDate: date.UTC(),
		CreatedAt:     now,
	}

	if err := s.storage.SaveDiseaseLog(ctx, l); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}
