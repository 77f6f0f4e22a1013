package meta

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/Alia5/httperrgen/internal/codegen/annotation"
)

var (
	// ErrNotEnum is wrapped by every ShapeError.
	ErrNotEnum = errors.New("not an enumerated type")
	// ErrMissingAnnotation is wrapped by every MissingAnnotationError.
	ErrMissingAnnotation = errors.New("missing annotation")
	// ErrSyntax is wrapped by every SyntaxError.
	ErrSyntax = errors.New("malformed annotation")
)

// ShapeError reports that the requested type cannot be treated as an enum.
type ShapeError struct {
	Type   string
	Kind   string // what was found instead, e.g. "struct" or "alias"
	Pos    token.Position
	Reason string
}

func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("type %s is a %s: only enumerated types are supported", e.Type, e.Kind)
	if e.Reason != "" {
		msg = fmt.Sprintf("type %s is a %s: %s", e.Type, e.Kind, e.Reason)
	}
	return prefixPos(e.Pos, msg)
}

func (e *ShapeError) Unwrap() error { return ErrNotEnum }

// MissingAnnotationError reports a variant whose detail block lacks
// required keys. A variant without any detail block reports every key.
type MissingAnnotationError struct {
	Type    string
	Variant string
	Keys    []string
	Pos     token.Position
}

func (e *MissingAnnotationError) Error() string {
	return prefixPos(e.Pos, fmt.Sprintf("%s.%s: detail annotation is missing %s",
		e.Type, e.Variant, strings.Join(e.Keys, ", ")))
}

func (e *MissingAnnotationError) Unwrap() error { return ErrMissingAnnotation }

// SyntaxError reports a detail payload that could not be parsed.
type SyntaxError struct {
	Variant string
	Pos     token.Position
	Err     error
}

func (e *SyntaxError) Error() string {
	msg := e.Err.Error()
	if e.Variant != "" {
		msg = e.Variant + ": " + msg
	}
	return prefixPos(e.Pos, "malformed annotation: "+msg)
}

func (e *SyntaxError) Unwrap() []error { return []error{ErrSyntax, e.Err} }

// NewSyntaxError wraps a directive parse failure for the named variant.
func NewSyntaxError(variant string, err error) *SyntaxError {
	var ae *annotation.Error
	if errors.As(err, &ae) {
		return &SyntaxError{Variant: variant, Pos: ae.Pos, Err: errors.New(ae.Msg)}
	}
	return &SyntaxError{Variant: variant, Err: err}
}

func prefixPos(pos token.Position, msg string) string {
	if !pos.IsValid() && pos.Filename == "" {
		return msg
	}
	return pos.String() + ": " + msg
}
