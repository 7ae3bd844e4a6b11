package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/agrilearn-network/internal/errors"
	"github.com/pribylovaa/agrilearn-network/internal/http/handlers"
	"github.com/pribylovaa/agrilearn-network/internal/http/middleware"
	"github.com/pribylovaa/agrilearn-network/internal/http/session"
	"github.com/pribylovaa/agrilearn-network/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// StaticDir — каталог собранного фронтенда; пустой — страницы не раздаются.
	StaticDir         string
	LoginPath         string
	ProtectedPrefixes []string
	Cookies           session.Cookies
	// Metrics — nil отключает HTTP-метрики.
	Metrics *middleware.Metrics
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	guard := middleware.NewGuard(svc, middleware.GuardOptions{
		LoginPath:         opts.LoginPath,
		ProtectedPrefixes: opts.ProtectedPrefixes,
		Cookies:           opts.Cookies,
		Metrics:           opts.Metrics,
	})

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования, чтобы request_id попал в логгер
		middleware.Logging(opts.Logger),
	)
	if opts.Metrics != nil {
		root.Use(opts.Metrics.HTTP())
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}
	root.Use(guard.Middleware())

	h := handlers.New(svc, opts.Cookies)

	root.Route("/api", func(r chi.Router) {
		registerRoutes(r, h, middleware.RequireUser(svc))

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			apierrors.Write(w, r, http.StatusNotFound, apierrors.CodeNotFound, "route not found")
		})
	})

	if opts.StaticDir != "" {
		root.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов под /api.
func registerRoutes(r chi.Router, h *handlers.Handlers, requireUser middleware.Middleware) {
	// auth
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh-token", h.RefreshToken)
	r.Get("/auth/refresh-token", h.RefreshTokenFromCookie)
	r.Post("/auth/logout", h.Logout)
	r.With(requireUser).Get("/auth/me", h.Me)

	// disease logs
	r.Get("/disease-logs", h.ListDiseaseLogs)
	r.With(requireUser).Post("/disease-logs", h.CreateDiseaseLog)

	// weather
	r.Get("/weather", h.Weather)

	// plant photos
	r.With(requireUser).Post("/plant-photos/presign", h.PhotoPresign)
	r.With(requireUser).Post("/plant-photos/confirm", h.PhotoConfirm)
}
