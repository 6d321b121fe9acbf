package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	messageSuccessful = "Successful"
	maxBodyBytes      = 1 << 20
)

// BaseResponse is the envelope every endpoint returns. The HTTP status
// always equals ResponseCode.
type BaseResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ResponseCode int    `json:"responseCode"`
}

func successful() BaseResponse {
	return BaseResponse{Success: true, Message: messageSuccessful, ResponseCode: http.StatusOK}
}

// softNotFound reports a lookup that found nothing. It is not a failure.
func softNotFound(message string) BaseResponse {
	return BaseResponse{Success: true, Message: message, ResponseCode: http.StatusNotFound}
}

type CreatedResponse struct {
	BaseResponse
	ID int64 `json:"id"`
}

type PeopleResponse struct {
	BaseResponse
	People []domain.PersonAstronaut `json:"people"`
}

type PersonResponse struct {
	BaseResponse
	Person *domain.PersonAstronaut `json:"person"`
}

type DutyHistoryResponse struct {
	BaseResponse
	Person          *domain.PersonAstronaut `json:"person"`
	AstronautDuties []domain.AstronautDuty  `json:"astronautDuties"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respond(w http.ResponseWriter, base BaseResponse, v any) {
	writeJSON(w, base.ResponseCode, v)
}

// statusFor maps an error kind to its response code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("op", op), zap.Error(err))
	} else {
		log.Warn("request rejected", zap.String("op", op), zap.Int("status", status), zap.Error(err))
	}

	writeJSON(w, status, BaseResponse{
		Success:      false,
		Message:      err.Error(),
		ResponseCode: status,
	})
}

// pathName returns the {name} URL parameter, unescaped. chi matches on
// RawPath when the request has one, and on the decoded Path otherwise.
func pathName(r *http.Request) string {
	param := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return param
	}
	if name, err := url.PathUnescape(param); err == nil {
		return name
	}
	return param
}

// decodeBody decodes a JSON request body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return domain.Validationf("failed to read request body: %v", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return domain.Validationf("invalid request body: %v", err)
	}
	return nil
}

// decodeNameBody reads a single name from the body. The admin console sends
// a bare JSON string; an object carrying the name under field works too.
func decodeNameBody(r *http.Request, field string) (string, error) {
	var raw json.RawMessage
	if err := decodeBody(r, &raw); err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name, nil
	}

	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", domain.Validationf("request body must be a JSON string or an object with %q", field)
	}
	return obj[field], nil
}

// flexTime accepts RFC 3339 timestamps, timestamps without a zone (read as
// UTC) and plain dates.
type flexTime time.Time

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		return nil
	}

	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = flexTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognised date %q", s)
}
