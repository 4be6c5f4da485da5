package domain

import (
	"context"
	"errors"
)

var (
	// ErrMissingText is returned when a document arrives without decoded text.
	ErrMissingText = errors.New("document text is missing")
	// ErrInvalidDocument is returned when document text is not usable plain text.
	ErrInvalidDocument = errors.New("document is not usable plain text")
	// ErrDocumentNotFound is returned by stores for unknown document ids.
	ErrDocumentNotFound = errors.New("document not found")
)

// Tokenizer case-folds text and splits it into word tokens.
type Tokenizer interface {
	Tokenize(text string) (caseFolded string, tokens TokenSequence)
}

// StopwordFilter partitions tokens into kept and removed, preserving order.
type StopwordFilter interface {
	Filter(tokens TokenSequence) (kept, removed TokenSequence)
}

// Stemmer reduces a token to an approximate root form.
// Implementations must be deterministic and never return an empty string
// for a non-empty token.
type Stemmer interface {
	Name() string
	Stem(token string) string
}

// DocumentStore owns the corpus and the per-session upload pools.
// Every List call returns a copy the caller may keep.
type DocumentStore interface {
	ListCorpus(ctx context.Context) ([]Document, error)
	ListSession(ctx context.Context, sessionID string) ([]Document, error)
	AddUpload(ctx context.Context, sessionID, name string, text *string) (Document, error)
	RemoveUpload(ctx context.Context, sessionID, id string) error
	MarkProcessed(ctx context.Context, sessionID string, ids []string) error
	Close() error
}

// SearchService defines the operations exposed by the application core.
type SearchService interface {
	Search(ctx context.Context, sessionID, query string) ([]SearchResult, error)
	Corpus(ctx context.Context) ([]Document, error)
	Upload(ctx context.Context, sessionID, name string, text *string) (Document, error)
	Uploads(ctx context.Context, sessionID string) ([]Document, error)
	RemoveUpload(ctx context.Context, sessionID, id string) error
}
