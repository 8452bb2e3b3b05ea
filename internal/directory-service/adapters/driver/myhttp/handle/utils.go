package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"membro-hub/internal/directory-service/core/myerrors"
)

const (
	WaitTime = 10
)

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// jsonResponse writes the given data as a JSON-encoded HTTP response.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// jsonError writes an error response as JSON with the specified HTTP status code.
func jsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}

// statusFor picks the transport status for a core failure kind.
func statusFor(err error) int {
	switch {
	case errors.Is(err, myerrors.ErrInvalidCredentials),
		errors.Is(err, myerrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, myerrors.ErrUserNotFound),
		errors.Is(err, myerrors.ErrMembroNotFound):
		return http.StatusNotFound
	case errors.Is(err, myerrors.ErrMissingFields),
		errors.Is(err, myerrors.ErrConfirmationMismatch),
		errors.Is(err, myerrors.ErrIncorrectCurrentPassword):
		return http.StatusUnprocessableEntity
	case errors.Is(err, myerrors.ErrInvalidCode),
		errors.Is(err, myerrors.ErrExpiredCode),
		errors.Is(err, myerrors.ErrEmailRegistered):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
