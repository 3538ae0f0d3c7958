package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"measurement-generator/internal/common"
	"measurement-generator/schema"
)

// Diagnostic codes.
const (
	CodeInvalidAnnotation   = "INVALID_ANNOTATION"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeUnsupportedShape    = "UNSUPPORTED_SHAPE"
	CodeLoad                = "LOAD"
	CodeDuplicateWireName   = "DUPLICATE_WIRE_NAME"
	CodeResolved            = "RESOLVED"
	CodeUnknownType         = "UNKNOWN_TYPE"
)

// Diagnostics holds all diagnostic information from a check run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type is the qualified Go type this relates to (if any).
	Type string
	// Field names the struct fields this relates to (if any).
	Field string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typ, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Type:     typ,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typ, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Type:     typ,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typ, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Type:     typ,
		Field:    field,
	})
}

// AddResolveError records a resolution failure, coded by its class.
func (d *Diagnostics) AddResolveError(typ string, err error) {
	var serr *schema.Error
	if !errors.As(err, &serr) {
		d.AddError(CodeLoad, err.Error(), typ, "")
		return
	}

	msg := serr.Msg
	if serr.Invariant != "" {
		msg = fmt.Sprintf("%s: %s", serr.Invariant, msg)
	}

	d.AddError(Code(err), msg, typ, strings.Join(serr.Fields, ", "))
}

// Code maps a resolution error to its diagnostic code.
func Code(err error) string {
	switch {
	case errors.Is(err, schema.ErrInvalidAnnotation):
		return CodeInvalidAnnotation
	case errors.Is(err, schema.ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, schema.ErrUnsupportedShape):
		return CodeUnsupportedShape
	default:
		return CodeLoad
	}
}

// CheckRecord adds warnings and a summary for a successfully resolved type.
func (d *Diagnostics) CheckRecord(typ string, rt *schema.RecordType) {
	sections := []struct {
		name   string
		fields []schema.FieldDescriptor
	}{
		{"tag", rt.Tags()},
		{"field", rt.Fields()},
	}

	for _, section := range sections {
		seen := make(map[string]string)
		for _, f := range section.fields {
			if prev, ok := seen[f.WireName]; ok {
				d.AddWarning(CodeDuplicateWireName,
					fmt.Sprintf("%s name %q is written by both %s and %s", section.name, f.WireName, prev, f.SourceName),
					typ, f.SourceName)
				continue
			}

			seen[f.WireName] = f.SourceName
		}
	}

	_, hasTimestamp := rt.Timestamp()
	d.AddInfo(CodeResolved,
		fmt.Sprintf("measurement %q: %d tags, %d fields, timestamp=%t",
			rt.MeasurementName, len(rt.Tags()), len(rt.Fields()), hasTimestamp),
		typ, "")
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
