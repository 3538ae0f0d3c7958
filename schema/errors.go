package schema

import (
	"errors"
	"strings"
)

var (
	ErrInvalidAnnotation   = errors.New("invalid annotation")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrUnsupportedShape    = errors.New("unsupported shape")
)

// Invariant names reported by ErrConstraintViolation errors.
const (
	InvariantFieldRequired   = "at least one field"
	InvariantSingleTimestamp = "at most one timestamp"
)

// Error is a resolution failure for one type.
type Error struct {
	// Kind is one of ErrInvalidAnnotation, ErrConstraintViolation or
	// ErrUnsupportedShape.
	Kind error
	// Type is the Go type name.
	Type string
	// Fields lists the offending fields, if any.
	Fields []string
	// Invariant is set for constraint violations.
	Invariant string
	Msg       string
}

func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString("measurement ")
	sb.WriteString(e.Type)

	if len(e.Fields) > 0 {
		sb.WriteString(": field ")
		sb.WriteString(strings.Join(e.Fields, ", "))
	}

	sb.WriteString(": ")
	sb.WriteString(e.Kind.Error())

	if e.Invariant != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Invariant)
		sb.WriteString(")")
	}

	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}

	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}
