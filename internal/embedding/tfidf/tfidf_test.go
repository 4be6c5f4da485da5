package tfidf

import (
	"math"
	"testing"

	"docrank/internal/domain"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuildIndex_SmoothedIDF(t *testing.T) {
	docs := []domain.TokenSequence{
		{"sistem", "informas", "sistem"},
		{"algoritma", "porter"},
		{"sistem", "porter"},
	}
	x := BuildIndex(domain.TokenSequence{"sistem", "cari"}, docs)

	if x.Documents != 3 {
		t.Fatalf("Documents=%d; want 3", x.Documents)
	}
	want := []string{"algoritma", "cari", "informas", "porter", "sistem"}
	if len(x.Vocabulary) != len(want) {
		t.Fatalf("Vocabulary=%v; want %v", x.Vocabulary, want)
	}
	for i := range want {
		if x.Vocabulary[i] != want[i] {
			t.Fatalf("Vocabulary=%v; want %v", x.Vocabulary, want)
		}
	}
	if len(x.IDF) != len(x.Vocabulary) {
		t.Fatalf("IDF has %d entries for %d terms", len(x.IDF), len(x.Vocabulary))
	}
	if x.DF["sistem"] != 2 {
		t.Fatalf("df(sistem)=%d; want 2 (counted once per document)", x.DF["sistem"])
	}
	if got, w := x.IDF["sistem"], math.Log(4.0/3.0)+1; !approx(got, w) {
		t.Fatalf("idf(sistem)=%v; want %v", got, w)
	}
	// query-only term: df=0
	if got, w := x.IDF["cari"], math.Log(4.0)+1; !approx(got, w) {
		t.Fatalf("idf(cari)=%v; want %v", got, w)
	}
	for term, v := range x.IDF {
		if v < 1 {
			t.Fatalf("idf(%s)=%v; must be >= 1", term, v)
		}
	}
}

func TestBuildIndex_TermInEveryDocument(t *testing.T) {
	docs := []domain.TokenSequence{{"data"}, {"data"}}
	x := BuildIndex(nil, docs)
	if !approx(x.IDF["data"], 1) {
		t.Fatalf("idf(data)=%v; want 1", x.IDF["data"])
	}
}

func TestVectorize(t *testing.T) {
	docs := []domain.TokenSequence{{"a", "b"}, {"b"}}
	x := BuildIndex(nil, docs)
	vec := x.Vectorize(domain.TokenSequence{"a", "a", "b", "zzz"})

	if got, w := vec["a"], 0.5*x.IDF["a"]; !approx(got, w) {
		t.Fatalf("w(a)=%v; want %v", got, w)
	}
	if got, w := vec["b"], 0.25*x.IDF["b"]; !approx(got, w) {
		t.Fatalf("w(b)=%v; want %v", got, w)
	}
	if _, ok := vec["zzz"]; ok {
		t.Fatalf("unknown term must weigh 0 and be absent")
	}
}

func TestVectorize_Empty(t *testing.T) {
	x := BuildIndex(nil, []domain.TokenSequence{{"a"}})
	vec := x.Vectorize(nil)
	if vec == nil || len(vec) != 0 {
		t.Fatalf("empty sequence must give empty non-nil vector, got %v", vec)
	}
}
