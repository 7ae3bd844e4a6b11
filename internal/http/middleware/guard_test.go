package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/agrilearn-network/internal/http/session"
	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/pkg/log"
	"github.com/pribylovaa/agrilearn-network/internal/service"
	"github.com/pribylovaa/agrilearn-network/internal/tokens"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeAuth проверяет access-токены настоящим Manager, а обновление
// делегирует функции теста.
type fakeAuth struct {
	tm      *tokens.Manager
	refresh func(ctx context.Context, token string) (*models.TokenPair, *models.User, error)
	calls   int
}

func (a *fakeAuth) Authenticate(token string) (models.Claim, error) {
	return a.tm.Verify(token, tokens.Access)
}

func (a *fakeAuth) Refresh(ctx context.Context, token string) (*models.TokenPair, *models.User, error) {
	a.calls++
	if a.refresh == nil {
		return nil, nil, service.ErrInvalidToken
	}
	return a.refresh(ctx, token)
}

func newGuardEnv(t *testing.T, accessTTL time.Duration) (*Guard, *fakeAuth, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	tm := tokens.New(tokens.Config{
		AccessSecret:  "guard-access",
		RefreshSecret: "guard-refresh",
		AccessTTL:     accessTTL,
		RefreshTTL:    time.Hour,
		Now:           clock.Now,
	})
	auth := &fakeAuth{tm: tm}

	g := NewGuard(auth, GuardOptions{
		LoginPath:         "/auth/login",
		ProtectedPrefixes: []string{"/dashboard", "/plant-disease", "/weather-forecast"},
		Cookies:           session.Cookies{AccessTTL: accessTTL, RefreshTTL: time.Hour},
	})

	return g, auth, clock
}

func issue(t *testing.T, a *fakeAuth) models.TokenPair {
	t.Helper()
	pair, err := a.tm.Issue(models.Claim{UserID: "u1", Email: "u1@x.com"})
	require.NoError(t, err)
	return pair
}

func withCookies(r *http.Request, access, refresh string) *http.Request {
	if access != "" {
		r.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: access})
	}
	if refresh != "" {
		r.AddCookie(&http.Cookie{Name: session.RefreshCookie, Value: refresh})
	}
	return r
}

func TestGuard_PublicPath_NoCredentials_Allow(t *testing.T) {
	t.Parallel()

	g, _, _ := newGuardEnv(t, time.Hour)

	for _, p := range []string{
		"/auth/login", "/auth/register", "/auth/forgot-password",
		"/api/auth/login", "/api/auth/register", "/api/auth/refresh-token", "/api/auth/logout",
		"/", "/about", "/static/app.js",
	} {
		d := g.Decide(makeReq(p))
		require.Equal(t, Allow, d.Outcome, p)
		require.False(t, d.HasClaim, p)
	}
}

func TestGuard_ProtectedPrefix_SegmentMatch(t *testing.T) {
	t.Parallel()

	g, _, _ := newGuardEnv(t, time.Hour)

	require.Equal(t, Redirect, g.Decide(makeReq("/dashboard")).Outcome)
	require.Equal(t, Redirect, g.Decide(makeReq("/dashboard/")).Outcome)
	require.Equal(t, Redirect, g.Decide(makeReq("/plant-disease/tomato")).Outcome)
	require.Equal(t, Allow, g.Decide(makeReq("/dashboards")).Outcome)
	require.Equal(t, Redirect, g.Decide(makeReq("/static/../dashboard")).Outcome)
}

func TestGuard_Page_ValidAccessCookie_AllowWithClaim(t *testing.T) {
	t.Parallel()

	g, auth, _ := newGuardEnv(t, time.Hour)
	pair := issue(t, auth)

	d := g.Decide(withCookies(makeReq("/dashboard"), pair.AccessToken, ""))
	require.Equal(t, Allow, d.Outcome)
	require.True(t, d.HasClaim)
	require.Equal(t, "u1", d.Claim.UserID)
}

func TestGuard_Page_HeaderIsIgnored(t *testing.T) {
	t.Parallel()

	g, auth, _ := newGuardEnv(t, time.Hour)
	pair := issue(t, auth)

	r := makeReq("/dashboard")
	r.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	require.Equal(t, Redirect, g.Decide(r).Outcome)
}

// Access живёт 1 с, запрос через 2 с без refresh-cookie: редирект на вход.
func TestGuard_ExpiredAccess_NoRefresh_RedirectsToLogin(t *testing.T) {
	t.Parallel()

	g, auth, clock := newGuardEnv(t, time.Second)
	pair := issue(t, auth)
	clock.Advance(2 * time.Second)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	rr := httptest.NewRecorder()
	g.Middleware()(next).ServeHTTP(rr, withCookies(makeReq("/dashboard?tab=crops"), pair.AccessToken, ""))

	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/auth/login?next=%2Fdashboard%3Ftab%3Dcrops", rr.Header().Get("Location"))
	require.Zero(t, auth.calls)
}

func TestGuard_ExpiredAccess_WithRefresh_RefreshesAndProceeds(t *testing.T) {
	t.Parallel()

	g, auth, clock := newGuardEnv(t, time.Second)
	pair := issue(t, auth)
	clock.Advance(2 * time.Second)

	user := &models.User{ID: uuid.New(), Email: "u1@x.com"}
	newPair := &models.TokenPair{AccessToken: "new-acc", RefreshToken: "new-ref"}
	auth.refresh = func(_ context.Context, token string) (*models.TokenPair, *models.User, error) {
		require.Equal(t, pair.RefreshToken, token)
		return newPair, user, nil
	}

	var seen *models.User
	var seenClaim models.Claim
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.UserFrom(r.Context())
		seenClaim, _ = session.ClaimFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	g.Middleware()(next).ServeHTTP(rr, withCookies(makeReq("/dashboard"), pair.AccessToken, pair.RefreshToken))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Same(t, user, seen)
	require.Equal(t, user.Claim(), seenClaim)

	cookies := map[string]string{}
	for _, c := range rr.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	require.Equal(t, "new-acc", cookies[session.AccessCookie])
	require.Equal(t, "new-ref", cookies[session.RefreshCookie])
}

func TestGuard_Refresh_EnrichesRequestLogger(t *testing.T) {
	t.Parallel()

	g, auth, _ := newGuardEnv(t, time.Hour)
	user := &models.User{ID: uuid.New(), Email: "u1@x.com"}
	auth.refresh = func(context.Context, string) (*models.TokenPair, *models.User, error) {
		return &models.TokenPair{AccessToken: "a", RefreshToken: "r"}, user, nil
	}

	h := &capHandler{}
	var pageAttrs map[string]any
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.From(r.Context()).Info("page")
		pageAttrs = h.attrs
	})

	Chain(next, Logging(slog.New(h)), g.Middleware()).
		ServeHTTP(httptest.NewRecorder(), withCookies(makeReq("/dashboard"), "", "some-refresh"))

	require.Equal(t, user.ID.String(), pageAttrs["user_id"])
}

func TestGuard_MissingAccess_WithRefresh_DecidesRefresh(t *testing.T) {
	t.Parallel()

	g, _, _ := newGuardEnv(t, time.Hour)

	d := g.Decide(withCookies(makeReq("/weather-forecast"), "", "some-refresh"))
	require.Equal(t, Refresh, d.Outcome)
	require.Equal(t, "some-refresh", d.RefreshToken)
}

func TestGuard_RefreshFails_ClearsCookiesAndRedirects(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	g, auth, _ := newGuardEnv(t, time.Hour)
	g.metrics = NewMetrics(reg)
	auth.refresh = func(context.Context, string) (*models.TokenPair, *models.User, error) {
		return nil, nil, service.ErrUserNotFound
	}

	rr := httptest.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { t.Fatal("next must not be called") })
	g.Middleware()(next).ServeHTTP(rr, withCookies(makeReq("/dashboard"), "garbage", "stale"))

	require.Equal(t, http.StatusFound, rr.Code)
	require.Contains(t, rr.Header().Get("Location"), "/auth/login?next=")

	cleared := 0
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 && c.Value == "" {
			cleared++
		}
	}
	require.Equal(t, 2, cleared)

	require.Equal(t, 1.0, testutil.ToFloat64(g.metrics.guard.WithLabelValues("refresh")))
	require.Equal(t, 1.0, testutil.ToFloat64(g.metrics.guard.WithLabelValues("refresh_failed")))
}

func TestGuard_RefreshFails_ClearsCookiesOnlyWhenSessionRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantCleared int
	}{
		{"invalid token", fmt.Errorf("service.Refresh: %w", service.ErrInvalidToken), 2},
		{"user not found", fmt.Errorf("service.Refresh: %w", service.ErrUserNotFound), 2},
		{"storage failure", errors.New("service.Refresh: connection refused"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, auth, _ := newGuardEnv(t, time.Hour)
			auth.refresh = func(context.Context, string) (*models.TokenPair, *models.User, error) {
				return nil, nil, tt.err
			}

			rr := httptest.NewRecorder()
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { t.Fatal("next must not be called") })
			g.Middleware()(next).ServeHTTP(rr, withCookies(makeReq("/dashboard?tab=crops"), "", "stale"))

			require.Equal(t, http.StatusFound, rr.Code)
			require.Equal(t, "/auth/login?next=%2Fdashboard%3Ftab%3Dcrops", rr.Header().Get("Location"))

			cleared := 0
			for _, c := range rr.Result().Cookies() {
				if c.MaxAge < 0 {
					cleared++
				}
			}
			require.Equal(t, tt.wantCleared, cleared)
		})
	}
}

func TestGuard_API_MissingToken_401(t *testing.T) {
	t.Parallel()

	g, auth, _ := newGuardEnv(t, time.Hour)
	pair := issue(t, auth)

	rr := httptest.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { t.Fatal("next must not be called") })

	// Cookie на API не принимается.
	g.Middleware()(next).ServeHTTP(rr, withCookies(makeReq("/api/weather"), pair.AccessToken, pair.RefreshToken))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "missing_token", decodeEnvelope(t, rr).Error.Code)
	require.Zero(t, auth.calls)
}

func TestGuard_API_InvalidToken_401WithChallenge(t *testing.T) {
	t.Parallel()

	g, auth, clock := newGuardEnv(t, time.Second)
	pair := issue(t, auth)
	clock.Advance(time.Second)

	r := makeReq("/api/disease-logs")
	r.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	d := g.Decide(r)
	require.Equal(t, Unauthorized, d.Outcome)
	require.True(t, errors.Is(d.Err, tokens.ErrExpired))

	rr := httptest.NewRecorder()
	g.Middleware()(http.NotFoundHandler()).ServeHTTP(rr, r)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, `Bearer error="invalid_token"`, rr.Header().Get("WWW-Authenticate"))
	require.Equal(t, "invalid_token", decodeEnvelope(t, rr).Error.Code)
}

func TestGuard_API_RefreshTokenAsAccess_Rejected(t *testing.T) {
	t.Parallel()

	g, auth, _ := newGuardEnv(t, time.Hour)
	pair := issue(t, auth)

	r := makeReq("/api/weather")
	r.Header.Set("Authorization", "Bearer "+pair.RefreshToken)

	d := g.Decide(r)
	require.Equal(t, Unauthorized, d.Outcome)
	require.ErrorIs(t, d.Err, tokens.ErrSignature)
}

func TestGuard_API_ValidBearer_ClaimInContext(t *testing.T) {
	t.Parallel()

	g, auth, _ := newGuardEnv(t, time.Hour)
	pair := issue(t, auth)

	var claim models.Claim
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claim, _ = session.ClaimFrom(r.Context())
	})

	r := makeReq("/api/weather?city=pune")
	r.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	g.Middleware()(next).ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, models.Claim{UserID: "u1", Email: "u1@x.com"}, claim)
}

type fakeUsers struct {
	user *models.User
	err  error
}

func (f fakeUsers) CurrentUser(context.Context, models.Claim) (*models.User, error) {
	return f.user, f.err
}

func TestRequireUser(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: uuid.New(), Email: "u1@x.com"}
	claimed := func() *http.Request {
		r := makeReq("/api/auth/me")
		return r.WithContext(session.WithClaim(r.Context(), user.Claim()))
	}

	t.Run("ok", func(t *testing.T) {
		var seen *models.User
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = session.UserFrom(r.Context())
		})
		RequireUser(fakeUsers{user: user})(next).ServeHTTP(httptest.NewRecorder(), claimed())
		require.Same(t, user, seen)
	})

	t.Run("deleted account", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequireUser(fakeUsers{err: service.ErrUserNotFound})(http.NotFoundHandler()).ServeHTTP(rr, claimed())
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "user_not_found", decodeEnvelope(t, rr).Error.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequireUser(fakeUsers{err: errors.New("db down")})(http.NotFoundHandler()).ServeHTTP(rr, claimed())
		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("no claim", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequireUser(fakeUsers{user: user})(http.NotFoundHandler()).ServeHTTP(rr, makeReq("/api/auth/me"))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "missing_token", decodeEnvelope(t, rr).Error.Code)
	})
}
