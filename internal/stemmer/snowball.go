package stemmer

import (
	"github.com/kljensen/snowball"
)

// SnowballStemmer delegates to a Snowball stemmer for one of the languages the
// snowball package supports (english, spanish, french, russian, swedish,
// norwegian, hungarian).
type SnowballStemmer struct {
	language string
}

// NewSnowballStemmer validates language by stemming a probe word.
func NewSnowballStemmer(language string) (*SnowballStemmer, error) {
	if _, err := snowball.Stem("probe", language, true); err != nil {
		return nil, err
	}
	return &SnowballStemmer{language: language}, nil
}

// Name returns the identifier of this stemmer implementation.
func (s *SnowballStemmer) Name() string { return "snowball-" + s.language }

// Stem returns the Snowball stem of token, or token itself if stemming fails
// or produces nothing.
func (s *SnowballStemmer) Stem(token string) string {
	out, err := snowball.Stem(token, s.language, true)
	if err != nil || out == "" {
		return token
	}
	return out
}
