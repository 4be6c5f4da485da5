// Package docstore holds what every DocumentStore implementation shares.
package docstore

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"docrank/internal/domain"
)

// CorpusPool is the pool name of server documents.
const CorpusPool = "corpus"

// SessionPool returns the pool name of a session's uploads. It never equals
// CorpusPool.
func SessionPool(sessionID string) string { return "session/" + sessionID }

// NewUpload builds a session document from an uploaded name and its decoded
// text. A nil text is a precondition violation; an unsupported extension is
// accepted but marked Invalid so it never reaches ranking.
func NewUpload(name string, text *string) (domain.Document, error) {
	if text == nil {
		return domain.Document{}, domain.ErrMissingText
	}
	if !utf8.ValidString(*text) {
		return domain.Document{}, domain.ErrInvalidDocument
	}
	ext, ok := domain.ExtensionOf(name)
	status := domain.StatusReady
	if !ok {
		status = domain.StatusInvalid
	}
	return domain.Document{
		ID:        NewID(),
		Name:      strings.TrimSpace(name),
		Extension: ext,
		Status:    status,
		Source:    domain.SourceUploaded,
		Text:      *text,
	}, nil
}

// NewID returns a fresh random document id.
func NewID() string { return uuid.NewString() }
