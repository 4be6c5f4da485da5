package preprocess

import (
	"strings"

	"docrank/internal/domain"
)

// DefaultStopwords is the closed list of Indonesian function words removed
// before stemming.
func DefaultStopwords() []string {
	return []string{
		"yang", "dan", "di", "dari", "untuk", "adalah", "dengan", "ke",
		"dalam", "saya", "kita", "pada", "oleh", "sebagai", "itu", "ini",
		"atau", "juga", "tidak", "akan", "telah", "dapat", "karena",
		"namun", "tetapi", "sehingga", "yaitu", "mereka", "kami", "anda",
	}
}

// StopwordSet is an immutable set of stopwords. It is safe for concurrent use.
type StopwordSet struct {
	words map[string]struct{}
}

// NewStopwordSet builds a set from words. Words are case-folded so lookups
// against case-folded tokens are exact.
func NewStopwordSet(words ...[]string) StopwordSet {
	m := make(map[string]struct{})
	for _, list := range words {
		for _, w := range list {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			m[w] = struct{}{}
		}
	}
	return StopwordSet{words: m}
}

// Contains reports whether token is a stopword.
func (s StopwordSet) Contains(token string) bool {
	_, ok := s.words[token]
	return ok
}

// Len returns the number of stopwords in the set.
func (s StopwordSet) Len() int { return len(s.words) }

// Filter partitions tokens into kept and removed, preserving relative order in
// both. Stopwords are removed, not deduplicated.
func (s StopwordSet) Filter(tokens domain.TokenSequence) (domain.TokenSequence, domain.TokenSequence) {
	kept := make(domain.TokenSequence, 0, len(tokens))
	removed := make(domain.TokenSequence, 0)
	for _, t := range tokens {
		if s.Contains(t) {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	return kept, removed
}
