package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/agrilearn-network/internal/pkg/log"
)

// Logging кладёт в контекст логгер запроса (с request_id) и по завершении
// пишет одну запись "http". Уровень зависит от статуса: 5xx — error,
// 4xx — warn, остальное — info.
func Logging(base *slog.Logger) Middleware {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, lg := log.Into(r.Context(), base), base
			if rid := r.Header.Get("X-Request-Id"); rid != "" {
				ctx, lg = log.With(ctx, slog.String("request_id", rid))
			}
			r = r.WithContext(ctx)

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			status := sw.Status()
			lg.LogAttrs(r.Context(), levelFor(status), "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("dur", time.Since(start)),
				slog.Int("bytes", sw.count),
			)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
