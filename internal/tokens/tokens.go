// tokens выпускает и проверяет пару JWT (access/refresh) для идентификационного
// claim пользователя.
//
// Основные аспекты:
//   - access и refresh подписываются РАЗНЫМИ секретами (HS256); класс токена
//     определяется только тем, какой секрет его проверяет, а не флагом внутри;
//   - секреты и сроки жизни передаются один раз при создании Manager и далее
//     только читаются, поэтому Manager безопасен для конкурентного использования;
//   - серверного списка отзыва нет: валидный токен принимается до истечения.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/agrilearn-network/internal/models"
)

// Kind — класс токена: определяет, каким секретом и сроком жизни он подписан.
type Kind int

const (
	Access Kind = iota
	Refresh
)

func (k Kind) String() string {
	if k == Refresh {
		return "refresh"
	}

	return "access"
}

// Значения по умолчанию, если конфигурация их не задала.
// Секреты-заглушки — контракт конфигурации, а не мера безопасности:
// в production они обязаны быть переопределены.
const (
	DefaultAccessSecret  = "fallback_access_secret"
	DefaultRefreshSecret = "fallback_refresh_secret"
	DefaultAccessTTL     = 3600 * time.Second
	DefaultRefreshTTL    = 2592000 * time.Second
)

var (
	// ErrInvalidToken — единственное условие, видимое вызывающему коду:
	// «токен невалиден или просрочен». Все ошибки Verify оборачивают его.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrExpired — деталь для логов: срок действия истёк.
	ErrExpired = errors.New("token expired")

	// ErrSignature — деталь для логов: подпись не совпала с выбранным секретом
	// (в том числе, если access-токен проверяют как refresh и наоборот).
	ErrSignature = errors.New("token signature mismatch")

	// ErrMalformed — деталь для логов: токен не разбирается или claim неполный.
	ErrMalformed = errors.New("malformed token")

	// ErrInvalidClaim — пустой UserID или Email при выпуске.
	ErrInvalidClaim = errors.New("invalid claim")

	errUnexpectedAlg = errors.New("unexpected signing method")
)

// Config — параметры выпуска и проверки токенов.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// Now — источник времени; nil означает time.Now.
	Now func() time.Time
}

// Manager выпускает и проверяет токены.
type Manager struct {
	cfg Config
}

type tokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// New создаёт Manager, подставляя значения по умолчанию для пустых полей.
func New(cfg Config) *Manager {
	if cfg.AccessSecret == "" {
		cfg.AccessSecret = DefaultAccessSecret
	}

	if cfg.RefreshSecret == "" {
		cfg.RefreshSecret = DefaultRefreshSecret
	}

	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}

	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Manager{cfg: cfg}
}

// TTL возвращает срок жизни токенов указанного класса.
func (m *Manager) TTL(kind Kind) time.Duration {
	if kind == Refresh {
		return m.cfg.RefreshTTL
	}

	return m.cfg.AccessTTL
}

// UsesFallbackSecrets сообщает, подписываются ли токены секретами-заглушками.
func (m *Manager) UsesFallbackSecrets() bool {
	return m.cfg.AccessSecret == DefaultAccessSecret || m.cfg.RefreshSecret == DefaultRefreshSecret
}

// Issue подписывает claim дважды: access-секретом и refresh-секретом,
// каждый со своим сроком жизни. Проверяется только наличие UserID и Email;
// существование учётной записи — ответственность вызывающего.
func (m *Manager) Issue(claim models.Claim) (models.TokenPair, error) {
	const op = "tokens.Issue"

	if claim.UserID == "" || claim.Email == "" {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidClaim)
	}

	now := m.cfg.Now().UTC()

	access, accessExp, err := m.sign(claim, Access, now)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	refresh, refreshExp, err := m.sign(claim, Refresh, now)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Verify проверяет подпись секретом, выбранным по kind, и срок действия.
// Токен считается просроченным, если now >= exp.
//
// Любая ошибка оборачивает ErrInvalidToken и одну из деталей:
// ErrExpired, ErrSignature или ErrMalformed.
func (m *Manager) Verify(token string, kind Kind) (models.Claim, error) {
	const op = "tokens.Verify"

	secret := m.secret(kind)

	// Алгоритм сверяется в keyfunc: чужой alg — это неверный формат токена,
	// а не несовпадение подписи.
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("%w: %s", errUnexpectedAlg, t.Method.Alg())
			}
			return secret, nil
		},
		jwt.WithTimeFunc(m.cfg.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Claim{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, classify(err))
	}

	c, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || c.UserID == "" || c.Email == "" {
		return models.Claim{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, ErrMalformed)
	}

	return models.Claim{UserID: c.UserID, Email: c.Email}, nil
}

func (m *Manager) sign(claim models.Claim, kind Kind, now time.Time) (string, time.Time, error) {
	exp := now.Add(m.TTL(kind))

	c := tokenClaims{
		UserID: claim.UserID,
		Email:  claim.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret(kind))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}

	return signed, exp, nil
}

func (m *Manager) secret(kind Kind) []byte {
	if kind == Refresh {
		return []byte(m.cfg.RefreshSecret)
	}

	return []byte(m.cfg.AccessSecret)
}

func classify(err error) error {
	switch {
	case errors.Is(err, errUnexpectedAlg):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignature
	default:
		return ErrMalformed
	}
}
