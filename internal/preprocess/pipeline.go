package preprocess

import (
	"fmt"
	"unicode/utf8"

	"docrank/internal/domain"
)

// Pipeline runs tokenization, stopword filtering and stemming in that order.
// It holds only immutable collaborators, so one Pipeline may serve any number
// of concurrent searches.
type Pipeline struct {
	tokenizer domain.Tokenizer
	filter    domain.StopwordFilter
	stemmer   domain.Stemmer
}

// NewPipeline wires the three preprocessing stages.
func NewPipeline(tokenizer domain.Tokenizer, filter domain.StopwordFilter, stemmer domain.Stemmer) *Pipeline {
	return &Pipeline{tokenizer: tokenizer, filter: filter, stemmer: stemmer}
}

// Process preprocesses text and returns the stemmed tokens together with the
// trace of the same pass. Text that is not valid UTF-8 is rejected.
func (p *Pipeline) Process(text string) (domain.TokenSequence, *domain.PreprocessingTrace, error) {
	if !utf8.ValidString(text) {
		return nil, nil, domain.ErrInvalidDocument
	}
	trace := p.trace(text)
	return trace.Stems(), trace, nil
}

// ProcessDocument is Process for a stored document. Documents marked Invalid
// never reach the engine.
func (p *Pipeline) ProcessDocument(doc domain.Document) (domain.TokenSequence, *domain.PreprocessingTrace, error) {
	if doc.Status == domain.StatusInvalid {
		return nil, nil, fmt.Errorf("document %s: %w", doc.ID, domain.ErrInvalidDocument)
	}
	stems, trace, err := p.Process(doc.Text)
	if err != nil {
		return nil, nil, fmt.Errorf("document %s: %w", doc.ID, err)
	}
	return stems, trace, nil
}

// Stem exposes the configured stemmer.
func (p *Pipeline) Stem(token string) string { return p.stemmer.Stem(token) }

// Tokenize exposes the configured tokenizer.
func (p *Pipeline) Tokenize(text string) (string, domain.TokenSequence) {
	return p.tokenizer.Tokenize(text)
}

// Filter exposes the configured stopword filter.
func (p *Pipeline) Filter(tokens domain.TokenSequence) (domain.TokenSequence, domain.TokenSequence) {
	return p.filter.Filter(tokens)
}

func (p *Pipeline) trace(text string) *domain.PreprocessingTrace {
	folded, tokens := p.tokenizer.Tokenize(text)
	kept, removed := p.filter.Filter(tokens)
	pairs := make([]domain.StemPair, len(kept))
	for i, tok := range kept {
		pairs[i] = domain.StemPair{Original: tok, Stemmed: p.stemmer.Stem(tok)}
	}
	return &domain.PreprocessingTrace{
		OriginalText:     text,
		CaseFolded:       folded,
		Tokens:           tokens,
		FilteredTokens:   kept,
		RemovedStopwords: removed,
		Stemming:         pairs,
	}
}
