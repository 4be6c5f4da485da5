package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string  `yaml:"addr" validate:"required"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" validate:"gte=0"`
	RateBurst    int     `yaml:"rate_burst" validate:"gte=0"`
	MaxUploadKB  int     `yaml:"max_upload_kb" validate:"gte=0"`
}

// CorpusConfig selects where the server corpus comes from.
type CorpusConfig struct {
	// Type is "seed" for the embedded sample corpus or "dir" for a directory of .txt files.
	Type string `yaml:"type" validate:"oneof=seed dir"`
	Dir  string `yaml:"dir" validate:"required_if=Type dir"`
}

// StoreConfig selects and configures the document store implementation.
type StoreConfig struct {
	Type   string        `yaml:"type" validate:"oneof=memory sqlite"`
	SQLite *SQLiteConfig `yaml:"sqlite,omitempty"`
}

// SQLiteConfig contains the database location for the sqlite store.
type SQLiteConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// PreprocessConfig overrides the stopword list.
type PreprocessConfig struct {
	// Stopwords replaces the default Indonesian list when non-empty.
	Stopwords      []string `yaml:"stopwords,omitempty"`
	ExtraStopwords []string `yaml:"extra_stopwords,omitempty"`
}

// StemmerConfig selects and configures the stemmer.
type StemmerConfig struct {
	Type          string   `yaml:"type" validate:"oneof=affix snowball"`
	Prefixes      []string `yaml:"prefixes,omitempty"`
	Suffixes      []string `yaml:"suffixes,omitempty"`
	MinStemLength int      `yaml:"min_stem_length" validate:"gte=0"`
	Language      string   `yaml:"language,omitempty" validate:"required_if=Type snowball"`
}

// SearchConfig selects the similarity model. TF-IDF cosine is the default;
// gvsm adds term co-occurrence and is slower on large corpora.
type SearchConfig struct {
	Model string `yaml:"model" validate:"oneof=tfidf gvsm"`
	// NoCorpusCache preprocesses the corpus on every search.
	NoCorpusCache bool `yaml:"no_corpus_cache,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Store      StoreConfig      `yaml:"store"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Stemmer    StemmerConfig    `yaml:"stemmer"`
	Search     SearchConfig     `yaml:"search"`
}

// Environment variables that override file values after loading.
const (
	EnvAddr       = "DOCRANK_ADDR"
	EnvCorpusDir  = "DOCRANK_CORPUS_DIR"
	EnvSQLitePath = "DOCRANK_SQLITE_PATH"
	EnvModel      = "DOCRANK_MODEL"
)

// Load decodes the docrank YAML file at path, fills unset fields, applies
// DOCRANK_* overrides and validates the result. A missing file yields the
// defaults with the same overrides.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		cfg = &AppConfig{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	applyConfigDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault looks for config.yaml in the working directory and then in
// ~/.config/docrank. When neither exists the defaults are written to the
// user path so there is a file to edit next time.
func LoadDefault() (*AppConfig, string, error) {
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	for _, path := range []string{"config.yaml", userPath} {
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		}
	}
	if err := Save(userPath, defaultConfig()); err != nil {
		return nil, "", err
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg *AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks cfg against its struct tags.
func Validate(cfg *AppConfig) error {
	return validator.New().Struct(cfg)
}

func defaultUserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "docrank", "config.yaml"), nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvCorpusDir); v != "" {
		cfg.Corpus = CorpusConfig{Type: "dir", Dir: v}
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		cfg.Store = StoreConfig{Type: "sqlite", SQLite: &SQLiteConfig{Path: v}}
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Search.Model = v
	}
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Server:  ServerConfig{Addr: ":5000", RateLimitRPS: 20, RateBurst: 40, MaxUploadKB: 1024},
		Corpus:  CorpusConfig{Type: "seed"},
		Store:   StoreConfig{Type: "memory"},
		Stemmer: StemmerConfig{Type: "affix", MinStemLength: 4},
		Search:  SearchConfig{Model: "tfidf"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Server.MaxUploadKB == 0 {
		cfg.Server.MaxUploadKB = 1024
	}
	if cfg.Corpus.Type == "" {
		cfg.Corpus.Type = "seed"
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "memory"
	}
	if cfg.Store.Type == "sqlite" {
		if cfg.Store.SQLite == nil {
			cfg.Store.SQLite = &SQLiteConfig{}
		}
		if cfg.Store.SQLite.Path == "" {
			cfg.Store.SQLite.Path = "docrank.db"
		}
	}
	if cfg.Stemmer.Type == "" {
		cfg.Stemmer.Type = "affix"
	}
	if cfg.Search.Model == "" {
		cfg.Search.Model = "tfidf"
	}
	if cfg.Stemmer.Type == "affix" && cfg.Stemmer.MinStemLength == 0 {
		cfg.Stemmer.MinStemLength = 4
	}
}
