package rest

import (
	"net/http"
	"strconv"
)

// Method is one of the HTTP verbs a request type may declare.
type Method int

const (
	MethodGet Method = iota
	MethodPost
	MethodDelete
	MethodPut
)

// String returns the canonical uppercase verb.
func (m Method) String() string {
	if s := m.HTTPMethod(); s != "" {
		return s
	}
	return "Method(" + strconv.Itoa(int(m)) + ")"
}

// HTTPMethod maps the verb to the transport representation. Unknown values yield "".
func (m Method) HTTPMethod() string {
	switch m {
	case MethodGet:
		return http.MethodGet
	case MethodPost:
		return http.MethodPost
	case MethodDelete:
		return http.MethodDelete
	case MethodPut:
		return http.MethodPut
	default:
		return ""
	}
}
