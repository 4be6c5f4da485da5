// Package gvsm scores documents with the generalized vector space model:
// raw term counts compared through a term-term correlation matrix built from
// document co-occurrence, so related terms contribute even without an exact
// match.
package gvsm

import (
	"math"
	"sort"

	"docrank/internal/domain"
)

// Model holds the co-occurrence statistics of one document set.
// It is built per request and is not safe for concurrent use.
type Model struct {
	postings map[string][]int // ascending document indexes
	docs     []map[string]float64
	sims     map[[2]string]float64
}

// New builds the model over docs. The vocabulary is the union of document
// terms; the query does not extend it.
func New(docs []domain.TokenSequence) *Model {
	m := &Model{
		postings: make(map[string][]int),
		docs:     make([]map[string]float64, len(docs)),
		sims:     make(map[[2]string]float64),
	}
	for i, tokens := range docs {
		tf := counts(tokens)
		m.docs[i] = tf
		for _, term := range sortedKeys(tf) {
			m.postings[term] = append(m.postings[term], i)
		}
	}
	return m
}

// Scores returns the similarity of query to every document in [0, 1],
// in document order. Query terms outside the vocabulary are ignored; a query
// with no known term scores 0 everywhere.
func (m *Model) Scores(query domain.TokenSequence) []float64 {
	q := counts(query)
	for term := range q {
		if _, ok := m.postings[term]; !ok {
			delete(q, term)
		}
	}
	qq := m.quad(q, q)
	out := make([]float64, len(m.docs))
	for i, d := range m.docs {
		den := math.Sqrt(m.quad(d, d)) * math.Sqrt(qq)
		if den == 0 {
			continue
		}
		s := m.quad(d, q) / den
		if s > 1 {
			s = 1
		}
		if s > 0 {
			out[i] = s
		}
	}
	return out
}

// Correlation is the normalized co-occurrence of two vocabulary terms:
// the number of documents holding both divided by the geometric mean of
// their document frequencies. A term correlates 1 with itself.
func (m *Model) Correlation(a, b string) float64 {
	if a == b {
		if _, ok := m.postings[a]; ok {
			return 1
		}
		return 0
	}
	if b < a {
		a, b = b, a
	}
	key := [2]string{a, b}
	if v, ok := m.sims[key]; ok {
		return v
	}
	pa, pb := m.postings[a], m.postings[b]
	v := 0.0
	if len(pa) > 0 && len(pb) > 0 {
		v = float64(intersect(pa, pb)) / math.Sqrt(float64(len(pa)*len(pb)))
	}
	m.sims[key] = v
	return v
}

// quad computes aᵀ·S·b in a fixed order.
func (m *Model) quad(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ak, bk := sortedKeys(a), sortedKeys(b)
	sum := 0.0
	for _, i := range ak {
		row := 0.0
		for _, j := range bk {
			row += m.Correlation(i, j) * b[j]
		}
		sum += a[i] * row
	}
	return sum
}

func counts(tokens domain.TokenSequence) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}

func sortedKeys(v map[string]float64) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func intersect(a, b []int) int {
	n, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			n++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return n
}
