package lineproto

import (
	"math"
	"strconv"
	"time"
)

// AppendTag appends key=value with both sides escaped.
func AppendTag(dst []byte, key, value string) []byte {
	dst = AppendKey(dst, key)
	dst = append(dst, '=')

	return AppendKey(dst, value)
}

// AppendIntField appends key=<v>i.
func AppendIntField(dst []byte, key string, v int64) []byte {
	dst = appendFieldKey(dst, key)
	dst = strconv.AppendInt(dst, v, 10)

	return append(dst, 'i')
}

// AppendUintField appends key=<v>u.
func AppendUintField(dst []byte, key string, v uint64) []byte {
	dst = appendFieldKey(dst, key)
	dst = strconv.AppendUint(dst, v, 10)

	return append(dst, 'u')
}

// AppendFloatField appends key=<v> using the shortest decimal representation
// that round-trips.
//
// NaN and ±Inf have no line protocol form. They are written as NaN, +Inf and
// -Inf, which InfluxDB rejects with a 400; callers that may hold them should
// check with IsFinite first.
func AppendFloatField(dst []byte, key string, v float64) []byte {
	dst = appendFieldKey(dst, key)

	return strconv.AppendFloat(dst, v, 'f', -1, 64)
}

// IsFinite reports whether v can be written as a float field value.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AppendFloat32Field is AppendFloatField for values that originate from a
// float32, so the shortest representation is computed at 32-bit precision.
func AppendFloat32Field(dst []byte, key string, v float32) []byte {
	dst = appendFieldKey(dst, key)

	return strconv.AppendFloat(dst, float64(v), 'f', -1, 32)
}

// AppendBoolField appends key=true or key=false.
func AppendBoolField(dst []byte, key string, v bool) []byte {
	dst = appendFieldKey(dst, key)

	return strconv.AppendBool(dst, v)
}

// AppendStringField appends key="v" with quotes and backslashes escaped.
func AppendStringField(dst []byte, key, v string) []byte {
	dst = appendFieldKey(dst, key)
	dst = append(dst, '"')
	dst = appendEscaped(dst, v, stringSpecials)

	return append(dst, '"')
}

// AppendTimestamp appends t as integer nanoseconds since the Unix epoch.
func AppendTimestamp(dst []byte, t time.Time) []byte {
	return strconv.AppendInt(dst, t.UnixNano(), 10)
}

// AppendNanos appends an already converted epoch timestamp.
func AppendNanos(dst []byte, ns int64) []byte {
	return strconv.AppendInt(dst, ns, 10)
}

func appendFieldKey(dst []byte, key string) []byte {
	dst = AppendKey(dst, key)

	return append(dst, '=')
}
