// Package httputil provides JSON request/response helpers for the HTTP API.
//
// Error responses carry the application error code so clients can branch on
// NOT_FOUND versus INVALID_PARAMETER without parsing messages.
package httputil

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err as a JSON error response, mapping application error
// codes to HTTP status codes. Unknown errors become 500.
func Error(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	JSON(w, statusFor(code), ErrorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	})
}

// statusFor maps an application error code to an HTTP status.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidParameter:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeMissingPrecondition, apperrors.ErrCodeMissingAttribute, apperrors.ErrCodeUndefinedMetric:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads the request body as JSON into v.
// A malformed body reports INVALID_PARAMETER.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidParameter, err, "decode request body")
	}
	return nil
}
