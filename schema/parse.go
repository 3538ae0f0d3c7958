package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"measurement-generator/internal/match"
)

// DefaultTagKey is the struct tag key read by Resolve.
const DefaultTagKey = "influx"

var annotationKeys = []string{"tag", "field", "timestamp", "rename"}

var errMalformedTag = errors.New("malformed struct tag")

// Lookup returns the values of every occurrence of key in a raw struct tag,
// in order. It scans with the same grammar as reflect.StructTag.Lookup, which
// only ever returns the first occurrence.
func Lookup(tag, key string) ([]string, error) {
	var values []string

	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}

		tag = tag[i:]
		if tag == "" {
			break
		}

		rest := tag

		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}

		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			return values, malformed(rest, key)
		}

		name := tag[:i]
		tag = tag[i+1:]

		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}

		if i >= len(tag) {
			return values, malformed(rest, key)
		}

		qvalue := tag[:i+1]
		tag = tag[i+1:]

		if name != key {
			continue
		}

		value, err := strconv.Unquote(qvalue)
		if err != nil {
			return values, fmt.Errorf("%w: %s", errMalformedTag, qvalue)
		}

		values = append(values, value)
	}

	return values, nil
}

// malformed reports a syntax error only when the unparsed remainder could
// still hold an occurrence of key; unrelated broken tags are left to go vet.
func malformed(rest, key string) error {
	if !strings.Contains(rest, key) {
		return nil
	}

	return fmt.Errorf("%w near %q", errMalformedTag, rest)
}

// ParseAnnotation parses the value of one occurrence, e.g. "field,rename=amount".
func ParseAnnotation(value string) (RawAnnotation, error) {
	var ann RawAnnotation

	if strings.TrimSpace(value) == "" {
		return ann, nil
	}

	items, err := splitItems(value)
	if err != nil {
		return RawAnnotation{}, err
	}

	for _, item := range items {
		key, val, hasValue := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "":
			return RawAnnotation{}, fmt.Errorf("empty item in %q", value)

		case "tag", "field", "timestamp":
			if hasValue {
				return RawAnnotation{}, fmt.Errorf("%s takes no value", key)
			}

			switch key {
			case "tag":
				ann.IsTag = true
			case "field":
				ann.IsField = true
			case "timestamp":
				ann.IsTimestamp = true
			}

		case "rename":
			if !hasValue {
				return RawAnnotation{}, errors.New("rename requires a value")
			}

			name, err := unquoteValue(val)
			if err != nil {
				return RawAnnotation{}, err
			}

			ann.Rename = name

		default:
			return RawAnnotation{}, fmt.Errorf("unknown key %q%s", key, match.Hint(key, annotationKeys))
		}
	}

	return ann, nil
}

// splitItems splits on commas outside single quotes.
func splitItems(value string) ([]string, error) {
	var (
		items   []string
		start   int
		inQuote bool
	)

	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\'':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				items = append(items, value[start:i])
				start = i + 1
			}
		}
	}

	if inQuote {
		return nil, fmt.Errorf("unterminated quote in %q", value)
	}

	return append(items, value[start:]), nil
}

func unquoteValue(val string) (string, error) {
	if strings.HasPrefix(val, "'") {
		if len(val) < 2 || !strings.HasSuffix(val, "'") {
			return "", fmt.Errorf("badly quoted value %s", val)
		}

		val = val[1 : len(val)-1]
	} else if strings.Contains(val, "'") {
		return "", fmt.Errorf("badly quoted value %s", val)
	}

	if val == "" {
		return "", errors.New("rename requires a non-empty value")
	}

	return val, nil
}
