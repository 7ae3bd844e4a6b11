package models

import "time"

// Claim — полезная нагрузка, которая подписывается в оба токена.
//
// Описание:
//   - UserID — непрозрачный стабильный идентификатор учётной записи;
//   - Email — e-mail учётной записи, переносится «для удобства» и не
//     перепроверяется по хранилищу на каждом запросе.
//
// После подписи claim неизменяем: смена идентичности требует новой пары токенов.
type Claim struct {
	UserID string
	Email  string
}

// TokenPair — пара токенов, выдаваемая при входе/регистрации/обновлении.
//
// Описание:
//   - AccessToken — короткоживущий JWT для авторизации обычных запросов;
//   - RefreshToken — долгоживущий JWT, используется только для выпуска новой пары;
//   - AccessExpiresAt/RefreshExpiresAt — моменты истечения (UTC).
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
