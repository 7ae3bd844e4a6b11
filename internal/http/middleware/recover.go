package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "github.com/pribylovaa/agrilearn-network/internal/errors"
	"github.com/pribylovaa/agrilearn-network/internal/pkg/log"
)

// Recover превращает panic обработчика в 500/internal.
// Причина и стек уходят только в лог. http.ErrAbortHandler пробрасывается
// дальше: им net/http обрывает соединение намеренно.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("reason", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				apierrors.WriteError(w, r, fmt.Errorf("panic in handler"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
