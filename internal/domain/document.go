package domain

import (
	"path/filepath"
	"strings"
)

// Extension is the original file type of a document.
type Extension string

const (
	ExtTXT  Extension = ".txt"
	ExtDOCX Extension = ".docx"
	ExtPDF  Extension = ".pdf"
)

// Status tracks a document through ingestion.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusReady     Status = "Ready"
	StatusProcessed Status = "Processed"
	StatusInvalid   Status = "Invalid"
)

// Source tells which ownership pool a document belongs to.
type Source string

const (
	SourceServer   Source = "server"
	SourceUploaded Source = "uploaded"
)

// Document is a single text loaded into the system, either from the server
// corpus or uploaded within a session.
type Document struct {
	ID        string
	Name      string
	Extension Extension
	Status    Status
	Source    Source
	Text      string
}

// ExtensionOf returns the supported extension of name and whether it is supported.
func ExtensionOf(name string) (Extension, bool) {
	ext := Extension(strings.ToLower(filepath.Ext(name)))
	switch ext {
	case ExtTXT, ExtDOCX, ExtPDF:
		return ext, true
	}
	return ext, false
}

// TokenSequence is the ordered token list of exactly one source text.
type TokenSequence []string

// StemPair records one stemming step for the preprocessing trace.
type StemPair struct {
	Original string `json:"original"`
	Stemmed  string `json:"stemmed"`
}

// PreprocessingTrace exposes every intermediate artifact of one pipeline pass.
// len(FilteredTokens) == len(Tokens)-len(RemovedStopwords) and
// len(Stemming) == len(FilteredTokens), in the same order.
type PreprocessingTrace struct {
	OriginalText     string        `json:"original_text"`
	CaseFolded       string        `json:"case_folding"`
	Tokens           TokenSequence `json:"tokens"`
	FilteredTokens   TokenSequence `json:"filtered_tokens"`
	RemovedStopwords TokenSequence `json:"removed_stopwords"`
	Stemming         []StemPair    `json:"stemming"`
}

// Stems returns the stemmed sequence recorded in the trace.
func (t *PreprocessingTrace) Stems() TokenSequence {
	out := make(TokenSequence, len(t.Stemming))
	for i, p := range t.Stemming {
		out[i] = p.Stemmed
	}
	return out
}

// TermVector maps a term to its TF-IDF weight. Absent terms weigh 0.
type TermVector map[string]float64

// SearchResult is one ranked document. Results are never mutated after ranking.
type SearchResult struct {
	DocumentID    string              `json:"documentId"`
	DocumentName  string              `json:"documentName"`
	Source        Source              `json:"source"`
	Similarity    float64             `json:"similarity"`
	Rank          int                 `json:"rank"`
	Preprocessing *PreprocessingTrace `json:"preprocessing,omitempty"`
}
