package match

import (
	"slices"

	"github.com/maruel/natural"
)

// MinSimilarity is the lowest normalized similarity Closest accepts.
const MinSimilarity = 0.6

// Candidate is a scored suggestion.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and returns those reaching
// MinSimilarity, best first. Ties are broken by natural name order.
func Rank(name string, candidates []string) []Candidate {
	want := Normalize(name)

	var ranked []Candidate

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(want, Normalize(c))
		if score < MinSimilarity {
			continue
		}

		ranked = append(ranked, Candidate{Name: c, Score: score})
	}

	slices.SortFunc(ranked, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		default:
			return 0
		}
	})

	return ranked
}

// Closest returns the best candidate for name, if any is close enough.
func Closest(name string, candidates []string) (string, bool) {
	ranked := Rank(name, candidates)
	if len(ranked) == 0 {
		return "", false
	}

	return ranked[0].Name, true
}
