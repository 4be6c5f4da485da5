// Package seed loads the server corpus, either from the embedded sample set
// or from a directory of text files.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"docrank/internal/domain"
)

//go:embed corpus.yaml
var corpusYAML []byte

type entry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// Embedded returns the built-in Indonesian sample corpus.
func Embedded() ([]domain.Document, error) {
	var entries []entry
	if err := yaml.Unmarshal(corpusYAML, &entries); err != nil {
		return nil, fmt.Errorf("decode embedded corpus: %w", err)
	}
	docs := make([]domain.Document, 0, len(entries))
	for _, e := range entries {
		ext, _ := domain.ExtensionOf(e.Name)
		docs = append(docs, domain.Document{
			ID:        e.ID,
			Name:      e.Name,
			Extension: ext,
			Status:    domain.StatusAvailable,
			Source:    domain.SourceServer,
			Text:      e.Text,
		})
	}
	return docs, nil
}

// FromDir reads every supported file in dir, sorted by name. The file name is
// the document id. Only .txt files carry text; .docx and .pdf files are listed
// as Invalid since no extractor is wired in, and so are .txt files that are not
// valid UTF-8.
func FromDir(dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var docs []domain.Document
	for _, name := range names {
		ext, ok := domain.ExtensionOf(name)
		if !ok {
			continue
		}
		doc := domain.Document{
			ID:        name,
			Name:      name,
			Extension: ext,
			Status:    domain.StatusAvailable,
			Source:    domain.SourceServer,
		}
		if ext != domain.ExtTXT {
			doc.Status = domain.StatusInvalid
			docs = append(docs, doc)
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(data) {
			doc.Status = domain.StatusInvalid
			docs = append(docs, doc)
			continue
		}
		doc.Text = string(data)
		docs = append(docs, doc)
	}
	return docs, nil
}
