package preprocess

import (
	"strings"
	"unicode"

	"docrank/internal/domain"
)

// WordTokenizer lowercases text and splits it on whitespace after turning
// every rune that is not a letter, digit or space into a separator.
type WordTokenizer struct{}

// NewTokenizer returns the default word tokenizer.
func NewTokenizer() WordTokenizer { return WordTokenizer{} }

// Tokenize returns the case-folded text and its tokens. Empty input yields an
// empty, non-nil sequence.
func (WordTokenizer) Tokenize(text string) (string, domain.TokenSequence) {
	folded := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, folded)
	fields := strings.Fields(cleaned)
	tokens := make(domain.TokenSequence, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return folded, tokens
}
