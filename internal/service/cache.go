package service

import (
	"sync"

	"docrank/internal/domain"
	"docrank/internal/preprocess"
)

// processed holds the stems and trace of each document, index-aligned.
// Traces are shared between searches and must not be modified.
type processed struct {
	stems  []domain.TokenSequence
	traces []*domain.PreprocessingTrace
}

func process(pipeline *preprocess.Pipeline, docs []domain.Document) (*processed, error) {
	p := &processed{
		stems:  make([]domain.TokenSequence, len(docs)),
		traces: make([]*domain.PreprocessingTrace, len(docs)),
	}
	for i, d := range docs {
		stems, trace, err := pipeline.ProcessDocument(d)
		if err != nil {
			return nil, err
		}
		p.stems[i], p.traces[i] = stems, trace
	}
	return p, nil
}

func (p *processed) concat(other *processed) *processed {
	n := len(p.stems) + len(other.stems)
	out := &processed{
		stems:  make([]domain.TokenSequence, 0, n),
		traces: make([]*domain.PreprocessingTrace, 0, n),
	}
	out.stems = append(append(out.stems, p.stems...), other.stems...)
	out.traces = append(append(out.traces, p.traces...), other.traces...)
	return out
}

// corpusCache keeps the preprocessed corpus of the last snapshot it saw.
// Any difference in the snapshot (order, id, name, status or text) drops it.
type corpusCache struct {
	mu       sync.Mutex
	snapshot []domain.Document
	value    *processed
}

func (c *corpusCache) get(pipeline *preprocess.Pipeline, corpus []domain.Document) (*processed, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value != nil && sameDocuments(c.snapshot, corpus) {
		return c.value, true, nil
	}
	p, err := process(pipeline, corpus)
	if err != nil {
		c.snapshot, c.value = nil, nil
		return nil, false, err
	}
	c.snapshot = append([]domain.Document(nil), corpus...)
	c.value = p
	return p, false, nil
}

func sameDocuments(a, b []domain.Document) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Name != b[i].Name || a[i].Status != b[i].Status || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}
