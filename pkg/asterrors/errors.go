package asterrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a failure reported by the tree model.
type Kind string

const (
	KindValue          Kind = "value"           // value outside a type's domain
	KindType           Kind = "type"            // promotion table miss
	KindSyntax         Kind = "syntax"          // structurally invalid construct
	KindKey            Kind = "key"             // symbol redefinition or lookup miss
	KindIndex          Kind = "index"           // out-of-range container access
	KindNotImplemented Kind = "not-implemented" // unhandled visitor variant
)

// Error is a categorized error with optional source location and suggestion.
type Error struct {
	Kind       Kind   // Category of error
	Message    string // Error message
	Line       int    // Source line (0 when unknown)
	Col        int    // Source column (0 when unknown)
	Suggestion string // Suggested fix (optional)
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithLocation attaches a source location and returns the error.
func (e *Error) WithLocation(line, col int) *Error {
	e.Line = line
	e.Col = col
	return e
}

// WithSuggestion attaches a suggested fix and returns the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Error implements the error interface.
// It returns a formatted message with location and suggestion when present.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))

	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("\n  --> %d:%d", e.Line, e.Col))
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// IsKind reports whether err (or any error it wraps) is an *Error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or the empty Kind when err is not an
// *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
