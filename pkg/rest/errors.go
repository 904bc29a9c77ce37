package rest

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors identifying the stage a call failed at.
var (
	ErrEncode          = errors.New("encode request")
	ErrURL             = errors.New("resolve url")
	ErrHeader          = errors.New("build headers")
	ErrTransport       = errors.New("send request")
	ErrDecode          = errors.New("decode response")
	ErrBuilderConsumed = errors.New("header builder already built")
	ErrNoData          = errors.New("no data")
)

const maxBodySnippet = 512

// StatusError reports a response whose HTTP status is not 2xx. Its body is
// never decoded as an envelope.
type StatusError struct {
	Method     Method
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s %s: http status %s", e.Method, e.URL, status)
	}
	return fmt.Sprintf("%s %s: http status %s: %s", e.Method, e.URL, status, e.Body)
}

// APIError reports an envelope that decoded fine but signals failure.
type APIError struct {
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error code: " + e.Code
}

func (e *APIError) Unwrap() error { return e.Err }

func bodySnippet(body []byte) string {
	if len(body) > maxBodySnippet {
		body = body[:maxBodySnippet]
	}
	return strings.TrimSpace(string(body))
}
