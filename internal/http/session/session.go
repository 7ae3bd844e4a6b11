// session переносит учётные данные между HTTP и приложением.
//
// Два транспорта и два класса маршрутов:
//   - страницы читают токены только из cookie access_token/refresh_token;
//   - /api/* читает access-токен только из заголовка Authorization: Bearer.
//
// Источники не смешиваются: cookie не принимается на API, заголовок не
// принимается на страницах.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/tokens"
)

// Имена cookie.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

const bearerPrefix = "Bearer "

// FromHeader разбирает значение заголовка Authorization.
// Принимается только вид "Bearer <token>": ровно один пробел после схемы,
// непустой токен без пробельных символов.
func FromHeader(v string) (string, bool) {
	token, ok := strings.CutPrefix(v, bearerPrefix)
	if !ok || token == "" || strings.ContainsFunc(token, unicode.IsSpace) {
		return "", false
	}

	return token, true
}

// FromRequest — FromHeader для заголовка Authorization запроса.
func FromRequest(r *http.Request) (string, bool) {
	return FromHeader(r.Header.Get("Authorization"))
}

// FromCookies читает токен указанного класса из cookie запроса.
func FromCookies(r *http.Request, kind tokens.Kind) (string, bool) {
	c, err := r.Cookie(cookieName(kind))
	if err != nil || c.Value == "" {
		return "", false
	}

	return c.Value, true
}

// Cookies выставляет и очищает cookie сессии.
// Secure включается в production.
type Cookies struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Set записывает оба токена пары в HttpOnly cookie с MaxAge по сроку жизни токена.
func (c Cookies) Set(w http.ResponseWriter, pair *models.TokenPair) {
	http.SetCookie(w, c.cookie(AccessCookie, pair.AccessToken, c.AccessTTL))
	http.SetCookie(w, c.cookie(RefreshCookie, pair.RefreshToken, c.RefreshTTL))
}

// Clear удаляет обе cookie (MaxAge<0 и пустое значение).
func (c Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		ck := c.cookie(name, "", 0)
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		http.SetCookie(w, ck)
	}
}

func (c Cookies) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func cookieName(kind tokens.Kind) string {
	if kind == tokens.Refresh {
		return RefreshCookie
	}

	return AccessCookie
}

type claimKey struct{}

type userKey struct{}

// WithClaim кладёт проверенный claim в контекст запроса.
func WithClaim(ctx context.Context, claim models.Claim) context.Context {
	return context.WithValue(ctx, claimKey{}, claim)
}

// ClaimFrom достаёт claim, положенный Guard.
func ClaimFrom(ctx context.Context) (models.Claim, bool) {
	c, ok := ctx.Value(claimKey{}).(models.Claim)
	return c, ok
}

// WithUser кладёт загруженную учётную запись в контекст.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey{}).(*models.User)
	return u, ok && u != nil
}
