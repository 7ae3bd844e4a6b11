package handlers

import (
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/agrilearn-network/internal/errors"
	"github.com/pribylovaa/agrilearn-network/internal/http/session"
	"github.com/pribylovaa/agrilearn-network/internal/service"
)

func (h *Handlers) PhotoPresign(w http.ResponseWriter, r *http.Request) {
	user, ok := session.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUserNotFound)
		return
	}

	var in photoPresignRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	up, err := h.svc.PresignPhoto(r.Context(), user.ID, in.ContentType, in.ContentLength)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, photoPresignResponse{
		UploadURL:       up.UploadURL,
		Key:             up.Key,
		ExpiresIn:       int64(up.Expires / time.Second),
		RequiredHeaders: up.RequiredHeaders,
	})
}

func (h *Handlers) PhotoConfirm(w http.ResponseWriter, r *http.Request) {
	user, ok := session.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUserNotFound)
		return
	}

	var in photoConfirmRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	url, err := h.svc.ConfirmPhoto(r.Context(), user.ID, in.Key)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, photoConfirmResponse{Key: in.Key, URL: url})
}
