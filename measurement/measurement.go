package measurement

import "reflect"

// Measurement is implemented by types with a generated serializer.
type Measurement interface {
	// MeasurementName is the resolved measurement name of the type.
	MeasurementName() string
	// AppendLine appends the instance as one line, without a trailing newline.
	AppendLine(dst []byte) []byte
}

// AppendLine appends the line for v. A generated Measurement implementation
// is used when v has one; otherwise the cached reflected codec is.
func AppendLine(dst []byte, v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return dst, ErrNilValue
	}

	if m, ok := v.(Measurement); ok {
		return m.AppendLine(dst), nil
	}

	c, err := For(rv.Type())
	if err != nil {
		return dst, err
	}

	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	return c.AppendValue(dst, rv), nil
}

// AppendBatch appends one line per value, newline separated, without a
// trailing newline. On error dst is returned as it was before the call.
func AppendBatch(dst []byte, values ...any) ([]byte, error) {
	start := len(dst)

	for i, v := range values {
		if i > 0 {
			dst = append(dst, '\n')
		}

		var err error
		if dst, err = AppendLine(dst, v); err != nil {
			return dst[:start], err
		}
	}

	return dst, nil
}

// Line returns the line for v as a string.
func Line(v any) (string, error) {
	b, err := AppendLine(nil, v)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
