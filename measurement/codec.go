package measurement

import (
	"fmt"
	"reflect"

	"measurement-generator/internal/common"
	"measurement-generator/schema"
)

type step func(dst []byte, v reflect.Value) []byte

// Codec is the compiled serializer of one struct type.
type Codec struct {
	typ    reflect.Type
	schema *schema.RecordType
	steps  []step
}

// Type returns the struct type the codec writes.
func (c *Codec) Type() reflect.Type {
	return c.typ
}

// Schema returns the resolved measurement name and field roles.
func (c *Codec) Schema() *schema.RecordType {
	return c.schema
}

// Append appends the line for v, which must be a value of the codec's type or
// a non-nil pointer to one. Other values panic, as they would in reflect.
func (c *Codec) Append(dst []byte, v any) []byte {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	if rv.Type() != c.typ {
		panic(fmt.Sprintf("measurement: codec for %s used with %s", c.typ, rv.Type()))
	}

	return c.AppendValue(dst, rv)
}

// AppendValue appends the line for a struct value of the codec's type.
func (c *Codec) AppendValue(dst []byte, rv reflect.Value) []byte {
	for _, s := range c.steps {
		dst = s(dst, rv)
	}

	return dst
}

// part is either a literal or a value writer; adjacent literals are merged
// into one step when the codec is built.
type part struct {
	literal string
	write   step
}

func lit(s string) part { return part{literal: s} }

// Compile builds the codec of t from its resolved record type. rt must come
// from resolving t; compiling itself cannot fail.
func Compile(t reflect.Type, rt *schema.RecordType) *Codec {
	comma := lit(",")

	parts := []part{lit(rt.MeasurementName)}

	if tags := rt.Tags(); len(tags) > 0 {
		parts = append(parts, comma)
		parts = append(parts, common.Intersperse(mapParts(tags, tagWriter), comma)...)
	}

	parts = append(parts, lit(" "))
	parts = append(parts, common.Intersperse(mapParts(rt.Fields(), fieldWriter), comma)...)
	parts = append(parts, lit(" "))

	if ts, ok := rt.Timestamp(); ok {
		parts = append(parts, part{write: timestampWriter(ts)})
	}

	return &Codec{typ: t, schema: rt, steps: compact(parts)}
}

func mapParts(fields []schema.FieldDescriptor, writer func(schema.FieldDescriptor) step) []part {
	parts := make([]part, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, part{write: writer(f)})
	}

	return parts
}

func compact(parts []part) []step {
	var (
		steps   []step
		pending string
	)

	flush := func() {
		if pending == "" {
			return
		}

		s := pending
		steps = append(steps, func(dst []byte, _ reflect.Value) []byte {
			return append(dst, s...)
		})
		pending = ""
	}

	for _, p := range parts {
		if p.write == nil {
			pending += p.literal
			continue
		}

		flush()
		steps = append(steps, p.write)
	}

	flush()

	return steps
}
