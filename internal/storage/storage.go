package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/agrilearn-network/internal/models"
)

var (
	// ErrNotFound — запись или объект не найдены.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument — нарушены ограничения запроса (тип/размер/ключ объекта).
	ErrInvalidArgument = errors.New("invalid argument")
)

// UserStorage выполняет операции над учётными записями.
type UserStorage interface {
	// SaveUser создает нового пользователя в БД.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email (без учёта регистра).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UpdateLastLogin фиксирует момент успешного входа.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// DiseaseLogStorage выполняет операции над журналом болезней растений.
type DiseaseLogStorage interface {
	// SaveDiseaseLog добавляет запись в журнал.
	SaveDiseaseLog(ctx context.Context, log *models.DiseaseLog) error
	// DiseaseLogs возвращает записи, удовлетворяющие фильтру,
	// от новых к старым по дате диагностики.
	DiseaseLogs(ctx context.Context, filter models.DiseaseLogFilter) ([]models.DiseaseLog, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	DiseaseLogStorage
	Ping(ctx context.Context) error
	Close()
}

// Photos — контракт генерации presigned URL и подтверждения загрузки фото растений.
type Photos interface {
	// PhotoUploadURL генерирует presigned PUT. Внутри — валидация contentType и contentLength.
	PhotoUploadURL(ctx context.Context, userID uuid.UUID, contentType string, contentLength int64) (*models.PhotoUpload, error)
	// CheckPhotoUpload проверяет факт загрузки по key (наличие, тип, размер).
	// Возвращает публичный URL, если сконфигурирован PublicBaseURL.
	CheckPhotoUpload(ctx context.Context, userID uuid.UUID, key string) (publicURL string, err error)
}
