package preprocess

import (
	"errors"
	"reflect"
	"testing"

	"docrank/internal/domain"
	"docrank/internal/stemmer"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(NewTokenizer(), NewStopwordSet(DefaultStopwords()), stemmer.NewAffixStemmer(stemmer.DefaultAffixRules()))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in         string
		wantFolded string
		want       domain.TokenSequence
	}{
		{"Sistem Temu-Kembali, Informasi!", "sistem temu-kembali, informasi!", domain.TokenSequence{"sistem", "temu", "kembali", "informasi"}},
		{"TF-IDF 2024\tdata\n\nbaru", "tf-idf 2024\tdata\n\nbaru", domain.TokenSequence{"tf", "idf", "2024", "data", "baru"}},
		{"a.b", "a.b", domain.TokenSequence{"a", "b"}},
		{"", "", domain.TokenSequence{}},
		{"  ...  ", "  ...  ", domain.TokenSequence{}},
	}
	tok := NewTokenizer()
	for _, tc := range tests {
		folded, got := tok.Tokenize(tc.in)
		if folded != tc.wantFolded {
			t.Fatalf("Tokenize(%q) folded=%q; want %q", tc.in, folded, tc.wantFolded)
		}
		if got == nil || !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Tokenize(%q)=%#v; want %#v", tc.in, got, tc.want)
		}
	}
}

func TestStopwordFilter_Example(t *testing.T) {
	set := NewStopwordSet([]string{"yang"})
	kept, removed := set.Filter(domain.TokenSequence{"sistem", "yang", "baik"})
	if !reflect.DeepEqual(kept, domain.TokenSequence{"sistem", "baik"}) {
		t.Fatalf("kept=%v", kept)
	}
	if !reflect.DeepEqual(removed, domain.TokenSequence{"yang"}) {
		t.Fatalf("removed=%v", removed)
	}
}

func TestStopwordFilter_Partition(t *testing.T) {
	set := NewStopwordSet(DefaultStopwords())
	tokens := domain.TokenSequence{"dan", "data", "di", "di", "sistem", "yang", "untuk", "cari", "dan"}
	kept, removed := set.Filter(tokens)
	if len(kept)+len(removed) != len(tokens) {
		t.Fatalf("partition lost tokens: kept=%v removed=%v", kept, removed)
	}
	// merging back by membership restores the original order
	var k, r int
	for i, tok := range tokens {
		if set.Contains(tok) {
			if removed[r] != tok {
				t.Fatalf("removed out of order at %d: %v", i, removed)
			}
			r++
		} else {
			if kept[k] != tok {
				t.Fatalf("kept out of order at %d: %v", i, kept)
			}
			k++
		}
	}
	if len(removed) != 6 {
		t.Fatalf("duplicates must be kept in removed: %v", removed)
	}
}

func TestStopwordSet_CaseFolded(t *testing.T) {
	set := NewStopwordSet([]string{" YANG "}, []string{"Dan"})
	if !set.Contains("yang") || !set.Contains("dan") || set.Len() != 2 {
		t.Fatalf("stopwords must be case-folded and trimmed")
	}
}

func TestPipeline_TraceInvariants(t *testing.T) {
	p := newTestPipeline()
	text := "Sistem temu kembali informasi adalah sistem yang digunakan untuk menemukan dokumen."
	stems, trace, err := p.Process(text)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if trace.OriginalText != text {
		t.Fatalf("original text not preserved")
	}
	if len(trace.FilteredTokens) != len(trace.Tokens)-len(trace.RemovedStopwords) {
		t.Fatalf("filtered/tokens/removed mismatch: %+v", trace)
	}
	if len(trace.Stemming) != len(trace.FilteredTokens) {
		t.Fatalf("stemming pairs=%d; filtered=%d", len(trace.Stemming), len(trace.FilteredTokens))
	}
	for i, pair := range trace.Stemming {
		if pair.Original != trace.FilteredTokens[i] {
			t.Fatalf("stem pair %d original=%q; want %q", i, pair.Original, trace.FilteredTokens[i])
		}
		if stems[i] != pair.Stemmed {
			t.Fatalf("stems and trace disagree at %d", i)
		}
	}
	if !reflect.DeepEqual(trace.RemovedStopwords, domain.TokenSequence{"adalah", "yang", "untuk"}) {
		t.Fatalf("removed=%v", trace.RemovedStopwords)
	}
}

func TestPipeline_RejectsInvalidText(t *testing.T) {
	p := newTestPipeline()
	if _, _, err := p.Process(string([]byte{0xff, 0xfe})); !errors.Is(err, domain.ErrInvalidDocument) {
		t.Fatalf("err=%v; want ErrInvalidDocument", err)
	}
	_, _, err := p.ProcessDocument(domain.Document{ID: "x", Status: domain.StatusInvalid, Text: "ok"})
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Fatalf("err=%v; want ErrInvalidDocument for Invalid status", err)
	}
}

func TestPipeline_EmptyText(t *testing.T) {
	p := newTestPipeline()
	stems, trace, err := p.Process("   ")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(stems) != 0 || trace.Tokens == nil || trace.Stemming == nil {
		t.Fatalf("empty text must produce empty, non-nil trace slices: %+v", trace)
	}
}
