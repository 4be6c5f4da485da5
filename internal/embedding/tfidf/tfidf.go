// Package tfidf builds the per-request vocabulary and IDF table and turns
// stemmed token sequences into sparse TF-IDF vectors.
package tfidf

import (
	"math"
	"sort"

	"docrank/internal/domain"
)

// Index is the vocabulary and IDF table of one search request.
// Every vocabulary term has exactly one IDF entry.
type Index struct {
	Vocabulary []string
	IDF        map[string]float64
	DF         map[string]int
	Documents  int
}

// BuildIndex aggregates the query and every document. The query contributes
// to the vocabulary but not to document frequencies or the document count.
func BuildIndex(query domain.TokenSequence, docs []domain.TokenSequence) *Index {
	df := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	vocab := make(map[string]struct{}, len(df)+len(query))
	for term := range df {
		vocab[term] = struct{}{}
	}
	for _, tok := range query {
		vocab[tok] = struct{}{}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(vocab))
	for term := range vocab {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	N := float64(len(docs))
	idf := make(map[string]float64, len(terms))
	for _, term := range terms {
		// Smoothed IDF, never below 1
		idf[term] = math.Log((N+1)/(float64(df[term])+1)) + 1.0
	}
	return &Index{Vocabulary: terms, IDF: idf, DF: df, Documents: len(docs)}
}

// Dimension returns the vocabulary size.
func (x *Index) Dimension() int { return len(x.Vocabulary) }

// Vectorize computes the TF-IDF vector of a stemmed token sequence. Terms the
// index does not know weigh 0 and are left out. An empty sequence yields an
// empty vector.
func (x *Index) Vectorize(tokens domain.TokenSequence) domain.TermVector {
	vec := make(domain.TermVector)
	if len(tokens) == 0 {
		return vec
	}
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	total := float64(len(tokens))
	for term, count := range counts {
		w := float64(count) / total * x.IDF[term]
		if w != 0 {
			vec[term] = w
		}
	}
	return vec
}
