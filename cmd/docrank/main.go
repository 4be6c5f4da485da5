package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"docrank/internal/app"
	"docrank/internal/config"
	"docrank/internal/summarizer"
	"docrank/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var maxSentences int
	flag.StringVar(&cfgPath, "config", os.Getenv("DOCRANK_CONFIG"), "Path to YAML config file (optional; uses ~/.config/docrank/config.yaml if not provided)")
	flag.IntVar(&maxSentences, "summary", 3, "Sentences in the corpus summary")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// stderr belongs to the terminal UI
	logger := app.NewLogger(io.Discard, "")
	ctx := context.Background()
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	// Uploads are files named on the command line, scoped to this run's session.
	session := uuid.NewString()
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		text := string(data)
		if _, err := a.Service.Upload(ctx, session, filepath.Base(path), &text); err != nil {
			log.Fatalf("upload %s: %v", path, err)
		}
	}

	corpus, err := a.Service.Corpus(ctx)
	if err != nil {
		log.Fatalf("list corpus: %v", err)
	}
	texts := make([]string, 0, len(corpus))
	for _, d := range corpus {
		texts = append(texts, d.Text)
	}
	sum := summarizer.NewFrequencySummarizer(a.Tokenizer, a.Stopwords)
	summary := sum.Summarize(strings.Join(texts, " "), maxSentences)

	m := tui.New(a.Service, session, summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
