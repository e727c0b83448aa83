package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is the single error kind produced by the client. Status is the HTTP
// status code, or 0 when the request never produced a response (transport
// failure). Detail is a human-readable message suitable for display.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Status == 0 {
		return "api: " + e.Detail
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
}

// Detail returns the display message for an error. For an *Error anywhere in
// the chain it is the extracted detail string; anything else falls back to
// err.Error().
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}

// extractDetail implements the error body policy: a JSON body with a non-empty
// "detail" field wins, otherwise the raw JSON body text, otherwise the status
// code and status text.
func extractDetail(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		var parsed any
		if err := json.Unmarshal(body, &parsed); err == nil {
			if obj, ok := parsed.(map[string]any); ok {
				if d, ok := obj["detail"].(string); ok && d != "" {
					return d
				}
			}
			return trimmed
		}
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
