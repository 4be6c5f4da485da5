package service

import (
	"context"
	"encoding/json"
	"testing"

	"docrank/internal/docstore/memory"
	"docrank/internal/docstore/seed"
	"docrank/internal/docstore/sqlite"
	"docrank/internal/domain"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestSearch_CachedMatchesUncached(t *testing.T) {
	ctx := context.Background()
	docs, err := seed.Embedded()
	if err != nil {
		t.Fatal(err)
	}
	cached := NewSearchService(newPipeline(), memory.NewStorage(docs), nil)
	plain := NewSearchService(newPipeline(), memory.NewStorage(docs), nil, WithoutCorpusCache())

	for _, q := range []string{"sistem informasi", "stemming kata dasar", "sistem informasi", "cosine similarity"} {
		a, err := cached.Search(ctx, "", q)
		if err != nil {
			t.Fatalf("cached Search(%q): %v", q, err)
		}
		b, err := plain.Search(ctx, "", q)
		if err != nil {
			t.Fatalf("uncached Search(%q): %v", q, err)
		}
		if mustJSON(t, a) != mustJSON(t, b) {
			t.Fatalf("query %q: cached and uncached results differ", q)
		}
		want, err := Rank(newPipeline(), q, docs)
		if err != nil {
			t.Fatal(err)
		}
		if mustJSON(t, a) != mustJSON(t, want) {
			t.Fatalf("query %q: service differs from Rank", q)
		}
	}
}

func TestSearch_CacheFollowsCorpusChanges(t *testing.T) {
	ctx := context.Background()
	st, err := sqlite.NewStorage(":memory:")
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	defer st.Close()
	first := []domain.Document{
		{ID: "doc1", Name: "a.txt", Extension: domain.ExtTXT, Status: domain.StatusAvailable, Text: "jaringan komputer"},
	}
	if err := st.SeedCorpus(ctx, first); err != nil {
		t.Fatal(err)
	}
	svc := NewSearchService(newPipeline(), st, nil)
	res, err := svc.Search(ctx, "", "jaringan")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].Similarity <= 0 {
		t.Fatalf("first corpus: %+v", res)
	}

	// same id, new text
	second := []domain.Document{
		{ID: "doc1", Name: "a.txt", Extension: domain.ExtTXT, Status: domain.StatusAvailable, Text: "algoritma stemming"},
	}
	if err := st.SeedCorpus(ctx, second); err != nil {
		t.Fatal(err)
	}
	res, err = svc.Search(ctx, "", "jaringan")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].Similarity != 0 {
		t.Fatalf("stale corpus served after reseed: %+v", res)
	}
	if res[0].Preprocessing.OriginalText != "algoritma stemming" {
		t.Fatalf("trace from stale corpus: %+v", res[0].Preprocessing)
	}
}

func TestSearch_UploadsBypassCache(t *testing.T) {
	ctx := context.Background()
	svc := NewSearchService(newPipeline(), memory.NewStorage(twoDocs()), nil)
	if _, err := svc.Search(ctx, "s1", "jaringan"); err != nil {
		t.Fatal(err)
	}
	up, err := svc.Upload(ctx, "s1", "net.txt", strp("jaringan komputer"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := svc.Search(ctx, "s1", "jaringan")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 || res[0].DocumentID != up.ID {
		t.Fatalf("new upload missing after cached search: %+v", res)
	}
	if err := svc.RemoveUpload(ctx, "s1", up.ID); err != nil {
		t.Fatal(err)
	}
	res, err = svc.Search(ctx, "s1", "jaringan")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("removed upload still ranked: %+v", res)
	}
}

func TestSearch_GVSMModel(t *testing.T) {
	ctx := context.Background()
	docs := []domain.Document{
		{ID: "a", Name: "a.txt", Text: "jaringan komputer"},
		{ID: "b", Name: "b.txt", Text: "komputer server"},
		{ID: "c", Name: "c.txt", Text: "resep masakan"},
	}
	svc := NewSearchService(newPipeline(), memory.NewStorage(docs), nil, WithModel(ModelGVSM))
	res, err := svc.Search(ctx, "", "jaringan")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 || res[0].DocumentID != "a" || res[1].DocumentID != "b" {
		t.Fatalf("order=%+v; want a, b, c", res)
	}
	if res[1].Similarity <= 0 {
		t.Fatalf("co-occurring document must score above 0 under GVSM: %+v", res[1])
	}
	if res[2].Similarity != 0 {
		t.Fatalf("unrelated document must score 0: %+v", res[2])
	}

	tfidf, err := Rank(newPipeline(), "jaringan", docs)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range tfidf {
		if r.DocumentID == "b" && r.Similarity != 0 {
			t.Fatalf("tf-idf must not match b without the term: %+v", r)
		}
	}
}
