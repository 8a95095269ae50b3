package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// EncodeError reports a request body that could not be produced: the
// body parameters failed schema validation, could not be marshaled, or
// a dynamic body function failed. The request is never dispatched.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode request body: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports a response that could not be decoded: a 2xx body
// failing schema validation, a custom decode function failing, or an
// error-spec body that does not match its schema. The HTTP exchange
// itself succeeded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// HTTPError is the generic transport-level failure for non-2xx
// responses with no configured error spec.
type HTTPError struct {
	StatusCode int
	Body       string
	RequestID  string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// HTTPStatus returns the response status code.
func (e *HTTPError) HTTPStatus() int { return e.StatusCode }

// APIError is a typed domain error decoded from a non-2xx response via
// an error spec. Detail holds the schema-validated error payload.
type APIError[E any] struct {
	StatusCode int
	Detail     E
}

func (e *APIError[E]) Error() string {
	return fmt.Sprintf("API error (status %d): %+v", e.StatusCode, e.Detail)
}

// HTTPStatus returns the response status code.
func (e *APIError[E]) HTTPStatus() int { return e.StatusCode }

// IsEncodeError checks if the error is a request-encoding error.
func IsEncodeError(err error) bool {
	var e *EncodeError
	return errors.As(err, &e)
}

// IsDecodeError checks if the error is a response-decoding error.
func IsDecodeError(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// StatusCode extracts the HTTP status from an HTTPError or APIError in
// the chain. Returns 0, false for transport and decode failures that
// carry no status.
func StatusCode(err error) (int, bool) {
	var sc interface{ HTTPStatus() int }
	if errors.As(err, &sc) {
		return sc.HTTPStatus(), true
	}
	return 0, false
}

// IsNotFound checks if the error carries a 404 status.
func IsNotFound(err error) bool {
	code, ok := StatusCode(err)
	return ok && code == http.StatusNotFound
}

// summarizeErrorBody extracts a safe error message from a response body
// without echoing potentially sensitive payloads back to the caller.
func summarizeErrorBody(body []byte) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Error != "" {
			return errResp.Error
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "request failed"
	}
	const maxLen = 200
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}

func requestIDFromHeader(header http.Header) string {
	if header == nil {
		return ""
	}
	if id := header.Get("X-Request-Id"); id != "" {
		return id
	}
	return header.Get("X-Request-ID")
}
