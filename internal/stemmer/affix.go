// Package stemmer reduces inflected words to an approximate root form.
package stemmer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// AffixRules is the immutable configuration of an AffixStemmer.
type AffixRules struct {
	Prefixes []string
	Suffixes []string
	// MinStemLength is the minimum number of runes that must remain after
	// removing an affix for the removal to be accepted.
	MinStemLength int
}

// DefaultAffixRules returns the Indonesian prefix and suffix tables.
func DefaultAffixRules() AffixRules {
	return AffixRules{
		Prefixes:      []string{"meng", "meny", "men", "mem", "me", "ber", "ter", "per", "pe", "di", "ke", "be", "se"},
		Suffixes:      []string{"kan", "nya", "an", "i"},
		MinStemLength: 4,
	}
}

// AffixStemmer strips at most one prefix and then at most one suffix,
// trying longer affixes first. There is no dictionary lookback.
type AffixStemmer struct {
	prefixes []string
	suffixes []string
	minLen   int
}

// NewAffixStemmer copies rules and orders each table longest first. Affixes of
// equal length keep their configured order.
func NewAffixStemmer(rules AffixRules) *AffixStemmer {
	minLen := rules.MinStemLength
	if minLen < 1 {
		minLen = 1
	}
	return &AffixStemmer{
		prefixes: longestFirst(rules.Prefixes),
		suffixes: longestFirst(rules.Suffixes),
		minLen:   minLen,
	}
}

// Name returns the identifier of this stemmer implementation.
func (s *AffixStemmer) Name() string { return "affix" }

// Stem returns the root form of token. It never returns an empty string for a
// non-empty token: when nothing can be stripped the token comes back as is.
func (s *AffixStemmer) Stem(token string) string {
	if token == "" {
		return token
	}
	word := s.stripPrefix(token)
	word = s.stripSuffix(word)
	if word == "" {
		return token
	}
	return word
}

func (s *AffixStemmer) stripPrefix(word string) string {
	n := utf8.RuneCountInString(word)
	for _, p := range s.prefixes {
		if strings.HasPrefix(word, p) && n-utf8.RuneCountInString(p) >= s.minLen {
			return word[len(p):]
		}
	}
	return word
}

func (s *AffixStemmer) stripSuffix(word string) string {
	n := utf8.RuneCountInString(word)
	for _, suf := range s.suffixes {
		if strings.HasSuffix(word, suf) && n-utf8.RuneCountInString(suf) >= s.minLen {
			return word[:len(word)-len(suf)]
		}
	}
	return word
}

func longestFirst(affixes []string) []string {
	out := make([]string, 0, len(affixes))
	for _, a := range affixes {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}
