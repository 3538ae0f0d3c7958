package match

import (
	"slices"
	"strconv"
)

// DefaultThreshold is the minimum similarity Suggest accepts.
const DefaultThreshold = 0.5

// Candidate is a known name scored against some input.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against input, best first. Ties keep the
// order of known.
func Rank(input string, known []string) []Candidate {
	norm := NormalizeIdent(input)

	out := make([]Candidate, 0, len(known))
	for _, name := range known {
		out = append(out, Candidate{Name: name, Score: Similarity(norm, NormalizeIdent(name))})
	}

	slices.SortStableFunc(out, func(x, y Candidate) int {
		switch {
		case x.Score > y.Score:
			return -1
		case x.Score < y.Score:
			return 1
		default:
			return 0
		}
	})

	return out
}

// Suggest returns the known name closest to input when it scores at least
// DefaultThreshold.
func Suggest(input string, known []string) (string, bool) {
	ranked := Rank(input, known)
	if len(ranked) == 0 || ranked[0].Score < DefaultThreshold {
		return "", false
	}

	return ranked[0].Name, true
}

// Hint formats a suggestion as a message suffix, or "" when there is none.
func Hint(input string, known []string) string {
	name, ok := Suggest(input, known)
	if !ok {
		return ""
	}

	return " (did you mean " + strconv.Quote(name) + "?)"
}
