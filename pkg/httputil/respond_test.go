package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

func TestJSON_WritesBodyAndHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"edges": 12})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var body map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["edges"] != 12 {
		t.Errorf("body = %v, want edges=12", body)
	}
}

func TestError_MapsCodesToStatus(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want int
	}{
		{apperrors.ErrCodeInvalidParameter, http.StatusBadRequest},
		{apperrors.ErrCodeNotFound, http.StatusNotFound},
		{apperrors.ErrCodeMissingPrecondition, http.StatusUnprocessableEntity},
		{apperrors.ErrCodeMissingAttribute, http.StatusUnprocessableEntity},
		{apperrors.ErrCodeUndefinedMetric, http.StatusUnprocessableEntity},
		{apperrors.ErrCodeStore, http.StatusInternalServerError},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, apperrors.New(tt.code, "boom"))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != string(tt.code) {
				t.Errorf("body code = %q, want %q", body.Code, tt.code)
			}
			if body.Message != "boom" {
				t.Errorf("body message = %q, want %q", body.Message, "boom")
			}
		})
	}
}

func TestError_PlainErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.ErrBodyNotAllowed)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Resolution int `json:"resolution"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"resolution": 7}`))
	var p payload
	if err := Decode(req, &p); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Resolution != 7 {
		t.Errorf("resolution = %d, want 7", p.Resolution)
	}
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	type payload struct {
		Resolution int `json:"resolution"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"resolutoin": 7}`))
	var p payload
	err := Decode(req, &p)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidParameter) {
		t.Errorf("Decode error = %v, want INVALID_PARAMETER", err)
	}
}
