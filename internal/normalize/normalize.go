// Package normalize turns raw product names into lists of stemmed terms.
//
// Normalization lowercases the name, splits it on runs of whitespace, stems
// every token and drops the tokens that are too short to carry meaning
// ("of", "an", "xl"). The output is the shared vocabulary for both the
// lexical and the vector matchers, so it must stay deterministic.
package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinTokenLength is the shortest stemmed token that survives normalization.
const DefaultMinTokenLength = 3

// Normalizer converts product names to stemmed token lists.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	stemmer        Stemmer
	minTokenLength int
}

// New creates a Normalizer. A nil stemmer selects InflectionStemmer and a
// non-positive minTokenLength selects DefaultMinTokenLength.
func New(stemmer Stemmer, minTokenLength int) *Normalizer {
	if stemmer == nil {
		stemmer = InflectionStemmer{}
	}
	if minTokenLength <= 0 {
		minTokenLength = DefaultMinTokenLength
	}
	return &Normalizer{stemmer: stemmer, minTokenLength: minTokenLength}
}

var defaultNormalizer = New(nil, DefaultMinTokenLength)

// Normalize normalizes raw with the default stemmer and token floor.
func Normalize(raw string) []string {
	return defaultNormalizer.Normalize(raw)
}

// Normalize returns the stemmed tokens of raw in their original order.
// Empty or whitespace-only input yields nil.
func (n *Normalizer) Normalize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	// Casers carry internal state, so one is created per call.
	lowered := cases.Lower(language.English).String(norm.NFC.String(raw))

	var tokens []string
	for _, field := range strings.Fields(lowered) {
		stem := n.stemmer.Stem(field)
		if utf8.RuneCountInString(stem) < n.minTokenLength {
			continue
		}
		tokens = append(tokens, stem)
	}
	return tokens
}

// Join renders tokens as the single document string used for exact comparison.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
