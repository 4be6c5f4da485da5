// Package ranker orders documents by their similarity to a query.
package ranker

import (
	"math"
	"sort"

	"docrank/internal/domain"
)

// Candidate is one document vector waiting to be ranked.
type Candidate struct {
	ID     string
	Name   string
	Source domain.Source
	Vector domain.TermVector
	Trace  *domain.PreprocessingTrace
}

// Rank scores every candidate against query and returns them ordered by
// similarity descending. Ties keep input order. Ranks run 1..N and
// zero-similarity entries are kept; dropping them is up to the caller.
func Rank(query domain.TermVector, candidates []Candidate) []domain.SearchResult {
	qnorm := norm(query)
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = Cosine(query, c.Vector, qnorm, norm(c.Vector))
	}
	return RankScores(scores, candidates)
}

// RankScores orders candidates by precomputed similarities in [0, 1], which
// are scaled to percentages. scores[i] belongs to candidates[i]; Vector is
// ignored. Ordering and rank rules are those of Rank.
func RankScores(scores []float64, candidates []Candidate) []domain.SearchResult {
	pct := make([]float64, len(candidates))
	for i := range candidates {
		pct[i] = clamp01(scores[i]) * 100
	}
	idxs := argsortDesc(pct)
	results := make([]domain.SearchResult, len(idxs))
	for pos, j := range idxs {
		c := candidates[j]
		results[pos] = domain.SearchResult{
			DocumentID:    c.ID,
			DocumentName:  c.Name,
			Source:        c.Source,
			Similarity:    round2(pct[j]),
			Rank:          pos + 1,
			Preprocessing: c.Trace,
		}
	}
	return results
}

// Cosine returns q·d / (‖q‖‖d‖) in [0, 1], or 0 when either norm is 0.
func Cosine(q, d domain.TermVector, qnorm, dnorm float64) float64 {
	if qnorm == 0 || dnorm == 0 {
		return 0
	}
	// iterate the smaller vector; absent terms weigh 0
	a, b := q, d
	if len(b) < len(a) {
		a, b = b, a
	}
	sum := 0.0
	for _, term := range sortedKeys(a) {
		sum += a[term] * b[term]
	}
	return clamp01(sum / (qnorm * dnorm))
}

// Relevant returns the results with similarity > 0, keeping rank values.
func Relevant(results []domain.SearchResult) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Similarity > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Band labels a similarity percentage for display.
func Band(similarity float64) string {
	switch {
	case similarity >= 50:
		return "High"
	case similarity >= 25:
		return "Medium"
	case similarity > 0:
		return "Low"
	}
	return "None"
}

func norm(v domain.TermVector) float64 {
	sum := 0.0
	for _, k := range sortedKeys(v) {
		sum += v[k] * v[k]
	}
	return math.Sqrt(sum)
}

// sortedKeys fixes the summation order so equal inputs give bit-identical scores.
func sortedKeys(v domain.TermVector) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return vals[idxs[a]] > vals[idxs[b]] })
	return idxs
}

func clamp01(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	return x
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
