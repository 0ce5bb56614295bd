package platform

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error is a normalized upstream API error. Status carries the HTTP
// status code, Fields the per-field validation messages when the
// upstream sent any.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream status %d", e.Status)
}

// maxRawErrorLen caps how much of a non-JSON error body is kept.
const maxRawErrorLen = 200

// parseError normalizes a non-2xx upstream response body. Bodies are
// parsed tolerantly: the message may live under "message", "detail" or
// "error", field errors under "fields" with string or string-array
// values. Anything unparseable degrades to the raw body or status text.
func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		e.Message = http.StatusText(status)
		return e
	}
	if !gjson.Valid(trimmed) {
		if len(trimmed) > maxRawErrorLen {
			trimmed = trimmed[:maxRawErrorLen]
		}
		e.Message = trimmed
		return e
	}

	root := gjson.Parse(trimmed)
	for _, key := range []string{"message", "detail", "error"} {
		if v := root.Get(key); v.Exists() && v.Type == gjson.String && v.String() != "" {
			e.Message = v.String()
			break
		}
	}

	if fields := root.Get("fields"); fields.IsObject() {
		e.Fields = make(map[string]string)
		fields.ForEach(func(key, value gjson.Result) bool {
			if value.IsArray() {
				parts := make([]string, 0, 2)
				value.ForEach(func(_, item gjson.Result) bool {
					parts = append(parts, item.String())
					return true
				})
				e.Fields[key.String()] = strings.Join(parts, ", ")
			} else {
				e.Fields[key.String()] = value.String()
			}
			return true
		})
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// authErrorNeedles are matched as substrings against error text. Status
// codes are checked first; the substring pass catches auth failures that
// arrive wrapped or stringified.
var authErrorNeedles = []string{
	"Unauthorized",
	"Forbidden",
	"401",
	"403",
	"Session expired",
}

// IsAuthError reports whether the error means the upstream rejected the
// caller's credentials, which must destroy the console session.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
			return true
		}
	}
	msg := err.Error()
	for _, needle := range authErrorNeedles {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}

// IsValidationError reports whether the error is an upstream 400/422
// carrying user-correctable input problems.
func IsValidationError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnprocessableEntity
}

// AsError extracts the normalized upstream error, if any.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
