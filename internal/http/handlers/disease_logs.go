package handlers

import (
	"net/http"
	"strings"
	"time"

	apierrors "github.com/pribylovaa/agrilearn-network/internal/errors"
	"github.com/pribylovaa/agrilearn-network/internal/http/session"
	"github.com/pribylovaa/agrilearn-network/internal/models"
	"github.com/pribylovaa/agrilearn-network/internal/service"
)

const dateOnly = "2006-01-02"

// ListDiseaseLogs — GET /api/disease-logs?crop=&region=&startDate=&endDate=.
func (h *Handlers) ListDiseaseLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.DiseaseLogFilter{
		Crop:   q.Get("crop"),
		Region: q.Get("region"),
	}

	var err error
	if filter.From, _, err = parseDate(q.Get("startDate")); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	to, isDate, err := parseDate(q.Get("endDate"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}
	// Дата без времени в верхней границе покрывает весь день.
	if isDate {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	filter.To = to

	logs, err := h.svc.DiseaseLogs(r.Context(), filter)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]diseaseLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, diseaseLogFrom(l))
	}

	writeJSON(w, http.StatusOK, out)
}

// CreateDiseaseLog — POST /api/disease-logs.
func (h *Handlers) CreateDiseaseLog(w http.ResponseWriter, r *http.Request) {
	user, ok := session.UserFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUserNotFound)
		return
	}

	var in diseaseLogRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	date, _, err := parseDate(in.DiagnosisDate)
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	created, err := h.svc.CreateDiseaseLog(r.Context(), user.ID, models.NewDiseaseLog{
		CropName:      in.CropName,
		DiseaseName:   in.DiseaseName,
		Severity:      models.Severity(in.Severity),
		Region:        in.Region,
		DiagnosisDate: date,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, diseaseLogFrom(*created))
}

// parseDate принимает RFC 3339 или YYYY-MM-DD (UTC).
// Пустая строка даёт нулевое время; isDate=true для формы без времени.
func parseDate(raw string) (t time.Time, isDate bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, nil
	}

	if t, err = time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}

	if t, err = time.Parse(dateOnly, raw); err == nil {
		return t, true, nil
	}

	return time.Time{}, false, err
}
