package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apierrors "github.com/pribylovaa/agrilearn-network/internal/errors"
	"github.com/pribylovaa/agrilearn-network/internal/http/session"
	"github.com/pribylovaa/agrilearn-network/internal/service"
	"github.com/pribylovaa/agrilearn-network/internal/tokens"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, user, err := h.svc.Register(r.Context(), service.Registration{
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.cookies.Set(w, pair)
	writeJSON(w, http.StatusOK, sessionResponse{User: userFrom(user), Tokens: tokensFrom(pair)})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, user, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.cookies.Set(w, pair)
	writeJSON(w, http.StatusOK, sessionResponse{User: userFrom(user), Tokens: tokensFrom(pair)})
}

// RefreshToken (POST): refresh-токен из cookie, иначе из тела {"refreshToken": "..."}.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token, ok := session.FromCookies(r, tokens.Refresh)
	if !ok {
		var in refreshRequest
		// Тело необязательно: пустое или битое трактуем как отсутствие токена.
		if err := json.NewDecoder(r.Body).Decode(&in); err == nil || errors.Is(err, io.EOF) {
			token = in.RefreshToken
		}
	}

	h.refresh(w, r, token)
}

// RefreshTokenFromCookie (GET): только cookie.
func (h *Handlers) RefreshTokenFromCookie(w http.ResponseWriter, r *http.Request) {
	token, _ := session.FromCookies(r, tokens.Refresh)
	h.refresh(w, r, token)
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request, token string) {
	pair, _, err := h.svc.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrUserNotFound) {
			h.cookies.Clear(w)
		}
		apierrors.WriteError(w, r, err)
		return
	}

	h.cookies.Set(w, pair)
	writeJSON(w, http.StatusOK, tokensFrom(pair))
}

// Logout очищает обе cookie без каких-либо проверок.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := session.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, userFrom(user))
}
