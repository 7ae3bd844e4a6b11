package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity — степень поражения посевов.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Valid сообщает, входит ли значение в допустимый набор.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

// DiseaseLog — запись журнала диагностики болезней растений.
type DiseaseLog struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CropName      string
	DiseaseName   string
	Severity      Severity
	Region        string
	DiagnosisDate time.Time
	CreatedAt     time.Time
}

// DiseaseLogFilter — фильтры выборки журнала.
// Пустые строки и нулевые даты означают «без фильтра»;
// границы дат включительные.
type DiseaseLogFilter struct {
	Crop   string
	Region string
	From   time.Time
	To     time.Time
}

// NewDiseaseLog — входные данные для создания записи.
type NewDiseaseLog struct {
	CropName      string
	DiseaseName   string
	Severity      Severity
	Region        string
	DiagnosisDate time.Time
}
