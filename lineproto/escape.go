package lineproto

import "strings"

const (
	measurementSpecials = ", "
	keySpecials         = ",= "
	stringSpecials      = `"\`
)

// EscapeMeasurement escapes commas and spaces in a measurement name.
func EscapeMeasurement(name string) string {
	if !strings.ContainsAny(name, measurementSpecials) {
		return name
	}

	return string(appendEscaped(nil, name, measurementSpecials))
}

// EscapeKey escapes commas, equal signs and spaces, which is the escaping
// used for tag keys, tag values and field keys.
func EscapeKey(key string) string {
	if !strings.ContainsAny(key, keySpecials) {
		return key
	}

	return string(appendEscaped(nil, key, keySpecials))
}

// AppendKey appends key escaped as a tag key, tag value or field key.
func AppendKey(dst []byte, key string) []byte {
	return appendEscaped(dst, key, keySpecials)
}

func appendEscaped(dst []byte, s, specials string) []byte {
	if !strings.ContainsAny(s, specials) {
		return append(dst, s...)
	}

	for i := 0; i < len(s); i++ {
		if strings.IndexByte(specials, s[i]) >= 0 {
			dst = append(dst, '\\')
		}

		dst = append(dst, s[i])
	}

	return dst
}
