package summarizer

import (
	"math"
	"sort"
	"strings"

	"docrank/internal/chunker"
	"docrank/internal/domain"
)

// FrequencySummarizer ranks sentences by word frequency (stopwords filtered).
// It reuses the search tokenizer and stopword filter so the summary weighs
// words the same way ranking does.
type FrequencySummarizer struct {
	tokenizer domain.Tokenizer
	filter    domain.StopwordFilter
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer(tokenizer domain.Tokenizer, filter domain.StopwordFilter) *FrequencySummarizer {
	return &FrequencySummarizer{
		tokenizer: tokenizer,
		filter:    filter,
	}
}

// Summarize returns a short summary by ranking sentences using token frequency.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	sentences := chunker.Sentences(text)
	if len(sentences) == 0 {
		return ""
	}
	// Compute word frequencies
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range s.tokens(sent) {
			freq[tok]++
		}
	}
	// Normalize frequencies
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		toks := s.tokens(sent)
		sscore := 0.0
		for _, tok := range toks {
			sscore += freq[tok]
		}
		// Normalize by sentence length to avoid bias
		if l := float64(len(toks)); l > 0 {
			sscore /= math.Sqrt(l)
		}
		scores[i] = pair{i, sscore}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	// Keep original order among selected
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, len(selected))
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return strings.Join(out, " ")
}

func (s *FrequencySummarizer) tokens(text string) domain.TokenSequence {
	_, toks := s.tokenizer.Tokenize(text)
	kept, _ := s.filter.Filter(toks)
	return kept
}
