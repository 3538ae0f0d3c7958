package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// IsMultiple returns true if the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Intersperse returns items with sep placed between every two neighbours:
// n items yield exactly n-1 separators and no leading or trailing one.
func Intersperse[S ~[]E, E any](items S, sep E) S {
	if len(items) == 0 {
		return nil
	}

	out := make(S, 0, 2*len(items)-1)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}

		out = append(out, item)
	}

	return out
}
