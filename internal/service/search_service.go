package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"docrank/internal/domain"
	"docrank/internal/embedding/gvsm"
	"docrank/internal/embedding/tfidf"
	"docrank/internal/preprocess"
	"docrank/internal/ranker"
)

// Model names a similarity model. ModelTFIDF is the default.
type Model string

const (
	ModelTFIDF Model = "tfidf"
	ModelGVSM  Model = "gvsm"
)

// Option configures a SearchServiceImpl.
type Option func(*SearchServiceImpl)

// WithModel selects the similarity model used by Search.
func WithModel(m Model) Option {
	return func(s *SearchServiceImpl) { s.model = m }
}

// WithoutCorpusCache makes every search preprocess the corpus again.
func WithoutCorpusCache() Option {
	return func(s *SearchServiceImpl) { s.cache = nil }
}

// SearchServiceImpl answers queries against the corpus plus the caller's
// session uploads. Vocabulary and IDF are rebuilt from a store snapshot on
// every search; only the preprocessed corpus is reused between searches, and
// only while the corpus snapshot is unchanged.
type SearchServiceImpl struct {
	pipeline *preprocess.Pipeline
	store    domain.DocumentStore
	log      *slog.Logger
	model    Model
	cache    *corpusCache
}

func NewSearchService(pipeline *preprocess.Pipeline, store domain.DocumentStore, logger *slog.Logger, opts ...Option) *SearchServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SearchServiceImpl{
		pipeline: pipeline,
		store:    store,
		log:      logger,
		model:    ModelTFIDF,
		cache:    &corpusCache{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search ranks every usable document for query. A blank query returns an
// empty result without touching the store.
func (s *SearchServiceImpl) Search(ctx context.Context, sessionID, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	start := time.Now()
	queryStems, _, err := s.pipeline.Process(query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	corpus, err := s.store.ListCorpus(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpus: %w", err)
	}
	var uploads []domain.Document
	if sessionID != "" {
		uploads, err = s.store.ListSession(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("list session %s: %w", sessionID, err)
		}
	}

	corpus = usable(corpus)
	var ready []string
	uploads = usable(uploads)
	for _, d := range uploads {
		if d.Status == domain.StatusReady {
			ready = append(ready, d.ID)
		}
	}

	var prepared *processed
	cached := false
	if s.cache != nil {
		prepared, cached, err = s.cache.get(s.pipeline, corpus)
	} else {
		prepared, err = process(s.pipeline, corpus)
	}
	if err != nil {
		return nil, err
	}
	fromUploads, err := process(s.pipeline, uploads)
	if err != nil {
		return nil, err
	}

	docs := append(append(make([]domain.Document, 0, len(corpus)+len(uploads)), corpus...), uploads...)
	all := prepared.concat(fromUploads)
	results := rankPrepared(s.model, queryStems, docs, all)

	if err := s.store.MarkProcessed(ctx, sessionID, ready); err != nil {
		s.log.Warn("mark uploads processed", "session", sessionID, "err", err)
	}
	s.log.Debug("search done",
		"query", query,
		"model", s.model,
		"documents", len(docs),
		"uploads", len(uploads),
		"corpus_cached", cached,
		"relevant", len(ranker.Relevant(results)),
		"took", time.Since(start),
	)
	return results, nil
}

// Rank runs the full pipeline over query and docs and returns every document
// ranked by TF-IDF cosine, each paired with the trace of the pass that
// produced its vector. docs is read only; the caller is expected to pass a
// snapshot.
func Rank(pipeline *preprocess.Pipeline, query string, docs []domain.Document) ([]domain.SearchResult, error) {
	return RankWith(ModelTFIDF, pipeline, query, docs)
}

// RankWith is Rank with an explicit similarity model.
func RankWith(model Model, pipeline *preprocess.Pipeline, query string, docs []domain.Document) ([]domain.SearchResult, error) {
	queryStems, _, err := pipeline.Process(query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	p, err := process(pipeline, docs)
	if err != nil {
		return nil, err
	}
	return rankPrepared(model, queryStems, docs, p), nil
}

func rankPrepared(model Model, queryStems domain.TokenSequence, docs []domain.Document, p *processed) []domain.SearchResult {
	candidates := make([]ranker.Candidate, len(docs))
	for i, d := range docs {
		source := d.Source
		if source == "" {
			source = domain.SourceServer
		}
		candidates[i] = ranker.Candidate{ID: d.ID, Name: d.Name, Source: source, Trace: p.traces[i]}
	}
	if model == ModelGVSM {
		return ranker.RankScores(gvsm.New(p.stems).Scores(queryStems), candidates)
	}
	index := tfidf.BuildIndex(queryStems, p.stems)
	for i := range candidates {
		candidates[i].Vector = index.Vectorize(p.stems[i])
	}
	return ranker.Rank(index.Vectorize(queryStems), candidates)
}

func usable(docs []domain.Document) []domain.Document {
	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if d.Status != domain.StatusInvalid {
			out = append(out, d)
		}
	}
	return out
}

func (s *SearchServiceImpl) Corpus(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListCorpus(ctx)
}

func (s *SearchServiceImpl) Upload(ctx context.Context, sessionID, name string, text *string) (domain.Document, error) {
	doc, err := s.store.AddUpload(ctx, sessionID, name, text)
	if err != nil {
		return domain.Document{}, err
	}
	s.log.Info("document uploaded", "session", sessionID, "id", doc.ID, "name", doc.Name, "status", doc.Status)
	return doc, nil
}

func (s *SearchServiceImpl) Uploads(ctx context.Context, sessionID string) ([]domain.Document, error) {
	return s.store.ListSession(ctx, sessionID)
}

func (s *SearchServiceImpl) RemoveUpload(ctx context.Context, sessionID, id string) error {
	return s.store.RemoveUpload(ctx, sessionID, id)
}
