package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"measurement-generator/schema"
)

func TestDiagnostics_AddResolveError(t *testing.T) {
	t.Parallel()

	var d Diagnostics

	d.AddResolveError("sensors.Reading", &schema.Error{
		Kind:      schema.ErrConstraintViolation,
		Type:      "Reading",
		Fields:    []string{"A", "B"},
		Invariant: schema.InvariantSingleTimestamp,
		Msg:       "2 fields are annotated with timestamp",
	})
	d.AddResolveError("sensors.Other", errors.New("boom"))

	require.Len(t, d.Errors, 2)
	assert.Equal(t, CodeConstraintViolation, d.Errors[0].Code)
	assert.Equal(t, "A, B", d.Errors[0].Field)
	assert.Equal(t,
		"[sensors.Reading] A, B: [CONSTRAINT_VIOLATION] at most one timestamp: 2 fields are annotated with timestamp",
		d.Errors[0].String())
	assert.Equal(t, CodeLoad, d.Errors[1].Code)

	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	assert.ErrorContains(t, d.Error(), "boom")
}

func TestCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CodeInvalidAnnotation, Code(&schema.Error{Kind: schema.ErrInvalidAnnotation}))
	assert.Equal(t, CodeUnsupportedShape, Code(&schema.Error{Kind: schema.ErrUnsupportedShape}))
	assert.Equal(t, CodeLoad, Code(errors.New("x")))
}

func TestDiagnostics_CheckRecord(t *testing.T) {
	t.Parallel()

	rt := &schema.RecordType{
		Name:            "Reading",
		MeasurementName: "reading",
		Descriptors: []schema.FieldDescriptor{
			{SourceName: "A", WireName: "v", IsField: true, Role: schema.RoleField},
			{SourceName: "B", WireName: "v", IsField: true, Role: schema.RoleField},
			{SourceName: "C", WireName: "v", IsTag: true, Role: schema.RoleTag},
		},
	}

	var d Diagnostics
	d.CheckRecord("sensors.Reading", rt)

	require.Len(t, d.Warnings, 1)
	assert.Equal(t, CodeDuplicateWireName, d.Warnings[0].Code)
	assert.Equal(t, "B", d.Warnings[0].Field)

	require.Len(t, d.Infos, 1)
	assert.Equal(t, `measurement "reading": 1 tags, 2 fields, timestamp=false`, d.Infos[0].Message)
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	t.Parallel()

	var a, b Diagnostics
	a.AddInfo(CodeResolved, "a", "", "")
	b.AddWarning(CodeDuplicateWireName, "b", "", "")
	b.AddError(CodeLoad, "c", "", "")

	a.Merge(b)
	assert.Len(t, a.Infos, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Errors, 1)
	assert.Equal(t, "warning", a.Warnings[0].Severity.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
