package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/agrilearn-network/internal/models"
)

const diseaseLogColumns = `id, user_id, crop_name, disease_name, severity, region, diagnosis_date, created_at`

func scanDiseaseLog(row pgx.Row) (models.DiseaseLog, error) {
	var (
		l        models.DiseaseLog
		severity string
	)

	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.CropName,
		&l.DiseaseName,
		&severity,
		&l.Region,
		&l.DiagnosisDate,
		&l.CreatedAt,
	)
	l.Severity = models.Severity(severity)

	return l, err
}

// SaveDiseaseLog добавляет запись в журнал.
func (s *Storage) SaveDiseaseLog(ctx context.Context, l *models.DiseaseLog) error {
	const op = "storage.postgres.SaveDiseaseLog"

	query := `
		INSERT INTO disease_logs(` + diseaseLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.pool.Exec(ctx, query,
		l.ID,
		l.UserID,
		l.CropName,
		l.DiseaseName,
		string(l.Severity),
		l.Region,
		l.DiagnosisDate,
		l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DiseaseLogs возвращает записи журнала по фильтру.
// Культура и регион сравниваются без учёта регистра, границы дат включительные.
func (s *Storage) DiseaseLogs(ctx context.Context, filter models.DiseaseLogFilter) ([]models.DiseaseLog, error) {
	const op = "storage.postgres.DiseaseLogs"

	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Crop != "" {
		add("lower(crop_name) = lower($%d)", filter.Crop)
	}

	if filter.Region != "" {
		add("lower(region) = lower($%d)", filter.Region)
	}

	if !filter.From.IsZero() {
		add("diagnosis_date >= $%d", filter.From)
	}

	if !filter.To.IsZero() {
		add("diagnosis_date <= $%d", filter.To)
	}

	query := `SELECT ` + diseaseLogColumns + ` FROM disease_logs`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY diagnosis_date DESC, id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	logs := make([]models.DiseaseLog, 0)
	for rows.Next() {
		l, err := scanDiseaseLog(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return logs, nil
}
