// Package app assembles the search engine from configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"docrank/internal/config"
	"docrank/internal/docstore/memory"
	"docrank/internal/docstore/seed"
	"docrank/internal/docstore/sqlite"
	"docrank/internal/domain"
	"docrank/internal/preprocess"
	"docrank/internal/service"
	"docrank/internal/stemmer"
)

// App holds the assembled components. Close releases the store.
type App struct {
	Pipeline  *preprocess.Pipeline
	Stopwords preprocess.StopwordSet
	Tokenizer preprocess.WordTokenizer
	Store     domain.DocumentStore
	Service   *service.SearchServiceImpl
}

// Build creates every component named by cfg.
func Build(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*App, error) {
	stops := NewStopwords(cfg.Preprocess)
	stem, err := NewStemmer(cfg.Stemmer)
	if err != nil {
		return nil, err
	}
	tok := preprocess.NewTokenizer()
	pipeline := preprocess.NewPipeline(tok, stops, stem)

	corpus, err := LoadCorpus(cfg.Corpus)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(ctx, cfg.Store, corpus)
	if err != nil {
		return nil, err
	}
	opts := []service.Option{service.WithModel(service.Model(cfg.Search.Model))}
	if cfg.Search.NoCorpusCache {
		opts = append(opts, service.WithoutCorpusCache())
	}
	logger.Info("engine ready",
		"model", cfg.Search.Model,
		"stemmer", stem.Name(),
		"stopwords", stops.Len(),
		"corpus", len(corpus),
		"store", cfg.Store.Type,
	)
	return &App{
		Pipeline:  pipeline,
		Stopwords: stops,
		Tokenizer: tok,
		Store:     store,
		Service:   service.NewSearchService(pipeline, store, logger, opts...),
	}, nil
}

// Close releases the underlying store.
func (a *App) Close() error { return a.Store.Close() }

// NewStopwords returns the configured list, or the default list plus extras.
func NewStopwords(cfg config.PreprocessConfig) preprocess.StopwordSet {
	if len(cfg.Stopwords) > 0 {
		return preprocess.NewStopwordSet(cfg.Stopwords, cfg.ExtraStopwords)
	}
	return preprocess.NewStopwordSet(preprocess.DefaultStopwords(), cfg.ExtraStopwords)
}

// NewStemmer builds the stemmer selected by cfg.Type.
func NewStemmer(cfg config.StemmerConfig) (domain.Stemmer, error) {
	switch cfg.Type {
	case "affix", "":
		rules := stemmer.DefaultAffixRules()
		if len(cfg.Prefixes) > 0 {
			rules.Prefixes = cfg.Prefixes
		}
		if len(cfg.Suffixes) > 0 {
			rules.Suffixes = cfg.Suffixes
		}
		if cfg.MinStemLength > 0 {
			rules.MinStemLength = cfg.MinStemLength
		}
		return stemmer.NewAffixStemmer(rules), nil
	case "snowball":
		return stemmer.NewSnowballStemmer(cfg.Language)
	default:
		return nil, fmt.Errorf("unknown stemmer: %s", cfg.Type)
	}
}

// LoadCorpus reads the server corpus from the embedded seed or a directory.
func LoadCorpus(cfg config.CorpusConfig) ([]domain.Document, error) {
	switch cfg.Type {
	case "seed", "":
		return seed.Embedded()
	case "dir":
		return seed.FromDir(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown corpus type: %s", cfg.Type)
	}
}

// NewStore opens the configured store and loads corpus into it.
func NewStore(ctx context.Context, cfg config.StoreConfig, corpus []domain.Document) (domain.DocumentStore, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.NewStorage(corpus), nil
	case "sqlite":
		if cfg.SQLite == nil {
			return nil, fmt.Errorf("sqlite store config missing")
		}
		st, err := sqlite.NewStorage(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		if err := st.SeedCorpus(ctx, corpus); err != nil {
			st.Close()
			return nil, fmt.Errorf("seed sqlite store: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store: %s", cfg.Type)
	}
}

// NewLogger returns a text slog logger writing to w at the named level
// (debug, info, warn, error). Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
