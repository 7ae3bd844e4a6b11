package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/pkg/log"
	"github.com/pribylovaa/agrilearn-network/internal/pkg/redact"
	"github.com/pribylovaa/agrilearn-network/internal/storage"
	"github.com/pribylovaa/agrilearn-network/internal/tokens"
)

const minPasswordLen = 8

// Registration — данные формы регистрации.
type Registration struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// Register создаёт учётную запись и сразу выдаёт пару токенов.
func (s *Service) Register(ctx context.Context, in Registration) (*models.TokenPair, *models.User, error) {
	const op = "service.auth.Register"

	fullName := strings.TrimSpace(in.FullName)
	if len([]rune(fullName)) < 2 {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidFullName)
	}

	email, err := validateEmail(in.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validatePassword(in.Password); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.storage.UserByEmail(ctx, email)
	if err == nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastLoginAt:  &now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.tokens.Issue(user.Claim())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_registered",
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(user.Email)),
	)

	return &pair, user, nil
}

// Login выполняет вход по email+пароль и фиксирует момент входа.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenPair, *models.User, error) {
	const op = "service.auth.Login"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if password == "" {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	now := s.now().UTC()
	if err := s.storage.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Сбой отметки о входе не прерывает вход.
		log.From(ctx).Warn("last_login_update_failed",
			slog.String("user_id", user.ID.String()),
			slog.String("err", err.Error()),
		)
	} else {
		user.LastLoginAt = &now
		user.UpdatedAt = now
	}

	pair, err := s.tokens.Issue(user.Claim())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return &pair, user, nil
}

// Refresh выпускает новую пару по refresh-токену.
//
// Ошибки:
//   - пустой токен: ErrMissingToken;
//   - подпись/срок: ErrInvalidToken;
//   - учётная запись удалена: ErrUserNotFound (не повторять);
//   - сбой хранилища: обёрнутая ошибка (500).
//
// Новая пара подписывается для id/email из хранилища, а не из claim.
// Параллельные вызовы с одним токеном не дедуплицируются: каждый получает свою пару.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, *models.User, error) {
	const op = "service.auth.Refresh"

	if refreshToken == "" {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	claim, err := s.tokens.Verify(refreshToken, tokens.Refresh)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.userByClaim(ctx, claim)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.tokens.Issue(user.Claim())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return &pair, user, nil
}

// Authenticate проверяет access-токен и возвращает claim без обращения к БД.
func (s *Service) Authenticate(accessToken string) (models.Claim, error) {
	const op = "service.auth.Authenticate"

	if accessToken == "" {
		return models.Claim{}, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	claim, err := s.tokens.Verify(accessToken, tokens.Access)
	if err != nil {
		return models.Claim{}, fmt.Errorf("%s: %w", op, err)
	}

	return claim, nil
}

// CurrentUser возвращает учётную запись по проверенному claim.
func (s *Service) CurrentUser(ctx context.Context, claim models.Claim) (*models.User, error) {
	const op = "service.auth.CurrentUser"

	user, err := s.userByClaim(ctx, claim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// SeedAdmin создаёт учётную запись администратора, если e-mail ещё свободен.
// created=false означает, что запись уже существовала и не менялась.
func (s *Service) SeedAdmin(ctx context.Context, in Registration) (user *models.User, created bool, err error) {
	const op = "service.auth.SeedAdmin"

	email, err := validateEmail(in.Email)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.storage.UserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	_, user, err = s.Register(ctx, in)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return user, true, nil
}

func (s *Service) userByClaim(ctx context.Context, claim models.Claim) (*models.User, error) {
	id, err := uuid.Parse(claim.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.storage.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateEmail проверяет базовый формат email и приводит его к нижнему регистру.
func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(email), nil
}

func validatePassword(pw string) error {
	if pw == "" {
		return ErrEmptyPassword
	}

	if len([]rune(pw)) < minPasswordLen {
		return ErrWeakPassword
	}

	return nil
}
