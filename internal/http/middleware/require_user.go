package middleware

import (
	"context"
	"net/http"

	apierrors "github.com/pribylovaa/agrilearn-network/internal/errors"
	"github.com/pribylovaa/agrilearn-network/internal/http/session"
	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/service"
)

// UserLoader загружает учётную запись по проверенному claim.
type UserLoader interface {
	CurrentUser(ctx context.Context, claim models.Claim) (*models.User, error)
}

// RequireUser подтверждает, что учётная запись из claim всё ещё существует,
// и кладёт её в контекст. Ставится после Guard.
func RequireUser(users UserLoader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := session.UserFrom(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			claim, ok := session.ClaimFrom(r.Context())
			if !ok {
				apierrors.WriteError(w, r, service.ErrMissingToken)
				return
			}

			user, err := users.CurrentUser(r.Context(), claim)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), user)))
		})
	}
}
