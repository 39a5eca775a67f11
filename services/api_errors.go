package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend responded %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend responded %d: %s", e.Op, e.StatusCode, e.Message)
}

// StatusCode returns the backend status carried by err, or 0 for transport
// and decoding failures.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsConflict reports a 409, which the booking endpoint uses for a taken slot.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func IsBadRequest(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}

// maxErrorMessage caps plain-text error bodies, in runes.
const maxErrorMessage = 200

func newAPIError(op string, status int, body []byte) *APIError {
	return &APIError{Op: op, StatusCode: status, Message: errorMessage(body)}
}

// errorMessage pulls a readable message out of an error body: the JSON
// "error" or "message" field, or the trimmed text itself.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	msg := strings.TrimSpace(strings.ToValidUTF8(string(body), ""))
	if utf8.RuneCountInString(msg) > maxErrorMessage {
		msg = string([]rune(msg)[:maxErrorMessage])
	}
	if strings.HasPrefix(msg, "{") || strings.HasPrefix(msg, "<") {
		return ""
	}
	return msg
}
