// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя (sentinel из internal/service
// или контекстную ошибку), а на выход даёт:
//   - корректный HTTP-статус;
//   - стабильный машиночитаемый code;
//   - краткое безопасное message без утечки деталей.
//
// Страницы ошибок не видят: Guard превращает их в редиректы.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/agrilearn-network/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// Стабильные коды для фронта.
const (
	CodeMissingToken       = "missing_token"
	CodeInvalidToken       = "invalid_token"
	CodeUserNotFound       = "user_not_found"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidArgument    = "invalid_argument"
	CodeAlreadyExists      = "already_exists"
	CodeNotFound           = "not_found"
	CodeUnavailable        = "unavailable"
	CodeCanceled           = "canceled"
	CodeDeadlineExceeded   = "deadline_exceeded"
	CodeInternal           = "internal"
)

// APIError — единый формат для фронта.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и ответ для фронта.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal;
//   - неизвестная ошибка (в т.ч. сбой хранилища) - 500/internal без деталей;
//   - ошибки валидации отдают текст sentinel-ошибки: он безопасен и полезен форме.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Для 401 выставляет WWW-Authenticate по схеме Bearer.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	Write(w, r, status, resp.Error.Code, resp.Error.Message)
}

// Write пишет ответ об ошибке с явно заданными статусом и кодом.
func Write(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	resp := ErrorResponse{Error: APIError{Code: code, Message: msg}}

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	switch code {
	case CodeInvalidToken:
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	case CodeMissingToken:
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, CodeInternal, "internal error"
	case errors.Is(err, service.ErrMissingToken):
		return http.StatusUnauthorized, CodeMissingToken, "missing token"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, CodeInvalidToken, "invalid or expired token"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusUnauthorized, CodeUserNotFound, "user not found"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password"
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrInvalidFullName):
		return http.StatusBadRequest, CodeInvalidArgument, firstSentinel(err)
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, CodeInvalidArgument, "invalid argument"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, CodeAlreadyExists, "user with this email already exists"
	case errors.Is(err, service.ErrCityNotFound):
		return http.StatusNotFound, CodeNotFound, "city not found"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, "not found"
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, CodeUnavailable, "service unavailable"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, CodeCanceled, "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeDeadlineExceeded, "deadline exceeded"
	default:
		return http.StatusInternalServerError, CodeInternal, "internal error"
	}
}

func firstSentinel(err error) string {
	for _, s := range []error{
		service.ErrInvalidEmail,
		service.ErrWeakPassword,
		service.ErrEmptyPassword,
		service.ErrInvalidFullName,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}

	return "invalid argument"
}
