// Package lexical detects typos between two normalized names using
// Levenshtein edit distance over their token cross product.
package lexical

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Defaults for typo classification.
const (
	DefaultMaxDistance = 2
	DefaultLengthFloor = 3
)

// BestEditDistance returns the smallest edit distance between any token of a
// and any token of b, together with the token of b that first achieved it.
// ok is false when either list is empty, in which case no typo is possible.
func BestEditDistance(a, b []string) (minDistance int, matched string, ok bool) {
	if len(a) == 0 || len(b) == 0 {
		return math.MaxInt, "", false
	}

	minDistance = math.MaxInt
	for _, ta := range a {
		for _, tb := range b {
			d := levenshtein.ComputeDistance(ta, tb)
			if d < minDistance {
				minDistance = d
				matched = tb
			}
		}
	}
	return minDistance, matched, true
}

// IsTypo reports whether distance d counts as a typo: close, but not equal.
func IsTypo(d, maxDistance int) bool {
	return d > 0 && d <= maxDistance
}

// TypoScore converts an edit distance into a 0-100 similarity score,
// normalizing by the matched token's length but never by less than lengthFloor.
func TypoScore(d int, matched string, lengthFloor int) int {
	length := utf8.RuneCountInString(matched)
	if length < lengthFloor {
		length = lengthFloor
	}
	if length <= 0 {
		return 0
	}

	score := int(math.Round((1 - float64(d)/float64(length)) * 100))
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}
