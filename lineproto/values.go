package lineproto

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedValue is returned by Field.Append for values that have no
// line protocol representation.
var ErrUnsupportedValue = errors.New("unsupported field value")

// Tag is a single tag pair for callers that build lines dynamically.
type Tag struct {
	Name  string
	Value string
}

// Append appends name=value to dst.
func (t Tag) Append(dst []byte) []byte {
	return AppendTag(dst, t.Name, t.Value)
}

// Field is a single field pair whose value type is only known at runtime.
// Generated and reflected codecs use the typed Append*Field functions instead.
type Field struct {
	Name  string
	Value any
}

// Append appends name=<encoded value> to dst. The value must be an integer,
// float, bool, string or time.Duration.
func (f Field) Append(dst []byte) ([]byte, error) {
	switch v := f.Value.(type) {
	case int:
		return AppendIntField(dst, f.Name, int64(v)), nil
	case int8:
		return AppendIntField(dst, f.Name, int64(v)), nil
	case int16:
		return AppendIntField(dst, f.Name, int64(v)), nil
	case int32:
		return AppendIntField(dst, f.Name, int64(v)), nil
	case int64:
		return AppendIntField(dst, f.Name, v), nil
	case time.Duration:
		return AppendIntField(dst, f.Name, int64(v)), nil
	case uint:
		return AppendUintField(dst, f.Name, uint64(v)), nil
	case uint8:
		return AppendUintField(dst, f.Name, uint64(v)), nil
	case uint16:
		return AppendUintField(dst, f.Name, uint64(v)), nil
	case uint32:
		return AppendUintField(dst, f.Name, uint64(v)), nil
	case uint64:
		return AppendUintField(dst, f.Name, v), nil
	case float32:
		return AppendFloat32Field(dst, f.Name, v), nil
	case float64:
		return AppendFloatField(dst, f.Name, v), nil
	case bool:
		return AppendBoolField(dst, f.Name, v), nil
	case string:
		return AppendStringField(dst, f.Name, v), nil
	default:
		return dst, fmt.Errorf("field %s: %w: %T", f.Name, ErrUnsupportedValue, f.Value)
	}
}

// Timestamp is the optional instant of a line.
type Timestamp struct {
	Time time.Time
}

// Append appends the timestamp as epoch nanoseconds.
func (t Timestamp) Append(dst []byte) []byte {
	return AppendTimestamp(dst, t.Time)
}
