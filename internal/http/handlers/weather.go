package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/agrilearn-network/internal/errors"
)

// Weather — GET /api/weather?city=.
func (h *Handlers) Weather(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Weather(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
