package normalize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

// Stemmer reduces a lowercased word to its canonical root.
type Stemmer interface {
	Stem(word string) string
}

// Stemmer names accepted by ParseStemmer.
const (
	StemmerInflection = "inflection"
	StemmerPorter2    = "porter2"
)

// StemmerNames lists the registered stemmers in display order.
var StemmerNames = []string{StemmerInflection, StemmerPorter2}

// ParseStemmer returns the stemmer registered under name.
func ParseStemmer(name string) (Stemmer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StemmerInflection, "":
		return InflectionStemmer{}, nil
	case StemmerPorter2, "snowball":
		return Porter2Stemmer{}, nil
	default:
		return nil, fmt.Errorf("unknown stemmer %q (valid: %s)", name, strings.Join(StemmerNames, ", "))
	}
}

// InflectionStemmer folds English plural and possessive forms, in the
// manner of Porter's step 1a, then maps a final "ie" or consonant-"y" to "i"
// as Porter's step 1c does, so both sides of berry/berries and
// cookie/cookies reach the same stem. Derivational suffixes and silent
// trailing letters are left alone: "potatoe" keeps its extra letter.
//
// Singulars ending in "oe" are only recognised when the remaining stem is
// short ("shoes", "toes"); "canoes" stems to "cano" while "canoe" stays.
type InflectionStemmer struct{}

// Stem implements Stemmer.
func (InflectionStemmer) Stem(word string) string {
	word = strings.TrimSuffix(word, "'s")
	word = strings.TrimSuffix(word, "’s")
	return foldFinalI(stripPlural(word))
}

func stripPlural(word string) string {
	if utf8.RuneCountInString(word) < 4 {
		return word
	}

	switch {
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-1]
	case strings.HasSuffix(word, "ss"), strings.HasSuffix(word, "us"), strings.HasSuffix(word, "is"):
		return word
	case strings.HasSuffix(word, "oes") && utf8.RuneCountInString(word) <= 5:
		return word[:len(word)-1]
	case strings.HasSuffix(word, "es") && esPlural(word[:len(word)-2]):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	}
	return word
}

// foldFinalI rewrites a trailing "ie", or "y" after a consonant, to "i".
// Words whose stem would drop below three letters are kept whole.
func foldFinalI(word string) string {
	n := utf8.RuneCountInString(word)
	switch {
	case strings.HasSuffix(word, "ie") && n > 3:
		return word[:len(word)-1]
	case strings.HasSuffix(word, "y") && n >= 3:
		prev, _ := utf8.DecodeLastRuneInString(word[:len(word)-1])
		if !strings.ContainsRune("aeiouy", prev) {
			return word[:len(word)-1] + "i"
		}
	}
	return word
}

// esPlural reports whether stem takes "-es" rather than "-s" in the plural.
func esPlural(stem string) bool {
	for _, suf := range []string{"o", "x", "z", "ch", "sh", "ss"} {
		if strings.HasSuffix(stem, suf) {
			return true
		}
	}
	return false
}

// Porter2Stemmer is the Snowball English stemmer.
type Porter2Stemmer struct{}

// Stem implements Stemmer.
func (Porter2Stemmer) Stem(word string) string {
	stemmed := english.Stem(word, true)
	if stemmed == "" {
		return word
	}
	return stemmed
}
