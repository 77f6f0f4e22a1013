// Package httperr is the runtime companion of httperrgen. Every enum with
// generated accessors satisfies Detail and can be written as an RFC 7807
// problem response.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ContentType of problem responses.
const ContentType = "application/problem+json"

// Detail is implemented by every type with generated accessors.
type Detail interface {
	ErrorCode() string
	HTTPStatus() int
	Message() string
}

// Problem is an RFC 7807 problem body extended with the error code.
type Problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code"`
}

// NewProblem builds the problem body for d.
func NewProblem(d Detail) Problem {
	status := d.HTTPStatus()
	return Problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: d.Message(),
		Code:   d.ErrorCode(),
	}
}

// As finds the first Detail in err's chain.
func As(err error) (Detail, bool) {
	var d Detail
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// Write serializes d as a problem response.
func Write(w http.ResponseWriter, d Detail) {
	p := NewProblem(d)
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// WriteError writes err as a problem response. Errors that carry no Detail
// become a plain 500 without leaking their text.
func WriteError(w http.ResponseWriter, err error) {
	if d, ok := As(err); ok {
		Write(w, d)
		return
	}
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(Problem{
		Title:  http.StatusText(http.StatusInternalServerError),
		Status: http.StatusInternalServerError,
		Code:   "Internal",
	})
}
