// service содержит бизнес-логику AgriLearn:
// регистрацию и вход пользователей, выпуск и обновление пары токенов,
// журнал болезней растений, погодные сводки и загрузку фото растений.
//
// Основные аспекты:
//   - Service не хранит состояние запроса; экземпляр безопасен для
//     конкурентного использования при потокобезопасных зависимостях.
//   - Необязательные подсистемы (погода, кэш, фото) подключаются
//     через Set*-методы; без них соответствующие операции возвращают
//     ErrUnavailable.
//   - Ошибки маппятся транспортом на HTTP-коды (см. internal/errors).
package service

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/agrilearn-network/internal/cache"
	"github.com/pribylovaa/agrilearn-network/internal/config"
	"github.com/pribylovaa/agrilearn-network/internal/storage"
	"github.com/pribylovaa/agrilearn-network/internal/tokens"
)

var (
	// ErrMissingToken — запрос не содержит токена. HTTP 401 missing_token.
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken — подпись не совпала, токен просрочен или не разбирается.
	// Совпадает с tokens.ErrInvalidToken. HTTP 401 invalid_token.
	ErrInvalidToken = tokens.ErrInvalidToken

	// ErrUserNotFound — токен валиден, но учётной записи больше нет.
	// HTTP 401 user_not_found, повторять обновление бессмысленно.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken — e-mail уже занят. HTTP 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidEmail — e-mail имеет некорректный формат. HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль короче 8 символов. HTTP 400.
	ErrWeakPassword = errors.New("password must be at least 8 characters")

	// ErrEmptyPassword — пароль пустой. HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidFullName — имя короче 2 символов. HTTP 400.
	ErrInvalidFullName = errors.New("full name must be at least 2 characters")

	// ErrInvalidArgument — прочие нарушения входных данных. HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound — запрошенный объект отсутствует. HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrCityNotFound — провайдер погоды не знает город. HTTP 404.
	ErrCityNotFound = errors.New("city not found")

	// ErrUnavailable — подсистема не сконфигурирована. HTTP 503.
	ErrUnavailable = errors.New("unavailable")
)

// Service описывает бизнес-логику AgriLearn.
type Service struct {
	storage storage.Storage
	tokens  *tokens.Manager
	now     func() time.Time

	weather    WeatherProvider    // может быть nil
	cache      cache.WeatherCache // может быть nil
	weatherCfg config.WeatherConfig

	photos storage.Photos // может быть nil
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, tm *tokens.Manager) *Service {
	return &Service{
		storage: storage,
		tokens:  tm,
		now:     time.Now,
	}
}

// SetWeather подключает провайдера погоды и (опционально) кэш.
func (s *Service) SetWeather(p WeatherProvider, c cache.WeatherCache, cfg config.WeatherConfig) {
	s.weather = p
	s.cache = c
	s.weatherCfg = cfg
}

// SetPhotos подключает хранилище фото растений.
func (s *Service) SetPhotos(p storage.Photos) {
	s.photos = p
}

// Ready проверяет доступность обязательных зависимостей (БД).
func (s *Service) Ready(ctx context.Context) error {
	return s.storage.Ping(ctx)
}
