package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx response. Body is the server's explanation, when
// it gave one.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

// StatusMessage renders err for a status line: the HTTP status when there
// is one, followed by the most specific text available.
func StatusMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		text := se.Body
		if text == "" {
			text = http.StatusText(se.Status)
		}
		return strings.TrimSpace(strconv.Itoa(se.Status) + " " + text)
	}
	return err.Error()
}

// errorBody extracts the backend's {title, errorMessage} payload, falling
// back to the raw text.
func errorBody(b []byte) string {
	raw := strings.TrimSpace(string(b))
	if raw == "" {
		return ""
	}
	var payload struct {
		Title        string `json:"title"`
		ErrorMessage string `json:"errorMessage"`
		Message      string `json:"message"`
	}
	if err := json.Unmarshal(b, &payload); err == nil {
		parts := make([]string, 0, 2)
		if payload.Title != "" {
			parts = append(parts, payload.Title)
		}
		switch {
		case payload.ErrorMessage != "":
			parts = append(parts, payload.ErrorMessage)
		case payload.Message != "":
			parts = append(parts, payload.Message)
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return raw
}
