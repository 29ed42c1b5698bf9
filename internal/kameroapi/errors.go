package kameroapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer (or a 2xx with success=false) from the
// backend.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) HTTPStatusCode() int { return e.StatusCode }
func (e *APIError) UserMessage() string { return e.Message }

func parseAPIError(resp *http.Response) *APIError {
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	payload := struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}{}
	if len(body) > 0 && json.Unmarshal(body, &payload) != nil {
		// Not JSON; the status line is more useful than an HTML error page.
		return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	msg := strings.TrimSpace(payload.Message)
	if msg == "" {
		msg = strings.TrimSpace(payload.Error)
	}
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{StatusCode: resp.StatusCode, Code: payload.Code, Message: msg}
}

// AsAPIError unwraps an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.StatusCode == http.StatusNotFound
}

// Message returns the backend's message for err when it has one, fallback
// otherwise. This is the text shown in toasts.
func Message(err error, fallback string) string {
	if ae, ok := AsAPIError(err); ok && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// Result is the common envelope of mutation responses.
type Result struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

type resultCarrier interface {
	result() Result
}

func (r Result) result() Result { return r }

func (r Result) err(status int) error {
	if r.Success != nil && !*r.Success {
		msg := r.Message
		if msg == "" {
			msg = "the request was not successful"
		}
		return &APIError{StatusCode: status, Message: msg}
	}
	return nil
}
