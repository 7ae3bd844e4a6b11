package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись фермера/администратора.
type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	// LastLoginAt — момент последнего входа (UTC); nil, если входа ещё не было.
	LastLoginAt *time.Time
}

// Claim возвращает идентификационные данные пользователя для подписи токенов.
func (u *User) Claim() Claim {
	return Claim{
		UserID: u.ID.String(),
		Email:  u.Email,
	}
}
