package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	apierrors "github.com/pribylovaa/agrilearn-network/internal/errors"
	"github.com/pribylovaa/agrilearn-network/internal/http/session"
	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/pkg/log"
	"github.com/pribylovaa/agrilearn-network/internal/service"
	"github.com/pribylovaa/agrilearn-network/internal/tokens"
)

// Authenticator — то, что нужно Guard от сервисного слоя.
type Authenticator interface {
	Authenticate(accessToken string) (models.Claim, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, *models.User, error)
}

// Outcome — итог проверки запроса.
type Outcome int

const (
	Allow Outcome = iota
	Redirect
	Refresh
	Unauthorized
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Refresh:
		return "refresh"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Decision — решение Guard по запросу.
//   - Claim заполнен при Allow на проверенном токене (HasClaim=true);
//   - RefreshToken заполнен при Refresh;
//   - Err заполнен при Unauthorized и определяет код ответа.
type Decision struct {
	Outcome      Outcome
	Claim        models.Claim
	HasClaim     bool
	RefreshToken string
	Err          error
}

// GuardOptions — параметры Guard.
type GuardOptions struct {
	LoginPath         string
	ProtectedPrefixes []string
	Cookies           session.Cookies
	Metrics           *Metrics
}

// Guard закрывает защищённые страницы и /api/*.
//
// Страницы читают только cookie и при проблемах уходят на форму входа
// (с тихим обновлением пары, если есть refresh-cookie). API читает только
// заголовок Authorization и отвечает 401: обновлять токен клиент ходит сам.
type Guard struct {
	auth      Authenticator
	loginPath string
	prefixes  []string
	public    map[string]struct{}
	cookies   session.Cookies
	metrics   *Metrics
}

var defaultPublicPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/forgot-password",
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/refresh-token",
	"/api/auth/logout",
}

func NewGuard(auth Authenticator, opts GuardOptions) *Guard {
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = "/auth/login"
	}

	public := make(map[string]struct{}, len(defaultPublicPaths)+1)
	for _, p := range defaultPublicPaths {
		public[p] = struct{}{}
	}
	public[cleanPath(loginPath)] = struct{}{}

	prefixes := make([]string, 0, len(opts.ProtectedPrefixes))
	for _, p := range opts.ProtectedPrefixes {
		if p = cleanPath(p); p != "/" {
			prefixes = append(prefixes, p)
		}
	}

	return &Guard{
		auth:      auth,
		loginPath: loginPath,
		prefixes:  prefixes,
		public:    public,
		cookies:   opts.Cookies,
		metrics:   opts.Metrics,
	}
}

// Decide классифицирует запрос, не трогая ответ.
// Обновление пары (Refresh) выполняет Middleware.
func (g *Guard) Decide(r *http.Request) Decision {
	p := cleanPath(r.URL.Path)

	if _, ok := g.public[p]; ok {
		return Decision{Outcome: Allow}
	}

	if isAPI(p) {
		return g.decideAPI(r)
	}

	if !g.protected(p) {
		return Decision{Outcome: Allow}
	}

	if access, ok := session.FromCookies(r, tokens.Access); ok {
		claim, err := g.auth.Authenticate(access)
		if err == nil {
			return Decision{Outcome: Allow, Claim: claim, HasClaim: true}
		}
	}

	if refresh, ok := session.FromCookies(r, tokens.Refresh); ok {
		return Decision{Outcome: Refresh, RefreshToken: refresh}
	}

	return Decision{Outcome: Redirect}
}

func (g *Guard) decideAPI(r *http.Request) Decision {
	token, ok := session.FromRequest(r)
	if !ok {
		return Decision{Outcome: Unauthorized, Err: service.ErrMissingToken}
	}

	claim, err := g.auth.Authenticate(token)
	if err != nil {
		return Decision{Outcome: Unauthorized, Err: err}
	}

	return Decision{Outcome: Allow, Claim: claim, HasClaim: true}
}

// Middleware применяет Decide к запросу.
func (g *Guard) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := g.Decide(r)
			g.metrics.guardOutcome(d.Outcome.String())

			switch d.Outcome {
			case Allow:
				if d.HasClaim {
					r = r.WithContext(session.WithClaim(r.Context(), d.Claim))
				}
				next.ServeHTTP(w, r)

			case Unauthorized:
				log.From(r.Context()).Debug("guard_unauthorized",
					slog.String("path", r.URL.Path),
					slog.String("reason", reason(d.Err)),
				)
				apierrors.WriteError(w, r, d.Err)

			case Refresh:
				pair, user, err := g.auth.Refresh(r.Context(), d.RefreshToken)
				if err != nil {
					g.metrics.guardOutcome("refresh_failed")
					log.From(r.Context()).Info("refresh_failed",
						slog.String("path", r.URL.Path),
						slog.String("reason", reason(err)),
					)
					// При сбое хранилища сессия ещё может быть валидной.
					if sessionRejected(err) {
						g.cookies.Clear(w)
					}
					g.redirect(w, r)
					return
				}

				g.cookies.Set(w, pair)
				ctx, _ := log.With(r.Context(), slog.String("user_id", user.ID.String()))
				ctx = session.WithClaim(ctx, user.Claim())
				ctx = session.WithUser(ctx, user)
				next.ServeHTTP(w, r.WithContext(ctx))

			default:
				g.redirect(w, r)
			}
		})
	}
}

func (g *Guard) redirect(w http.ResponseWriter, r *http.Request) {
	target := g.loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusFound)
}

func (g *Guard) protected(p string) bool {
	for _, pre := range g.prefixes {
		if p == pre || strings.HasPrefix(p, pre+"/") {
			return true
		}
	}
	return false
}

func isAPI(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// reason — короткая причина отказа для логов.
// sessionRejected — refresh-токен отвергнут или учётной записи нет:
// cookie больше ни на что не годятся.
func sessionRejected(err error) bool {
	return errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrUserNotFound)
}

func reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, tokens.ErrExpired):
		return "expired"
	case errors.Is(err, tokens.ErrSignature):
		return "signature"
	case errors.Is(err, tokens.ErrMalformed):
		return "malformed"
	case errors.Is(err, service.ErrUserNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}
