package sqlite

import (
	"context"
	"errors"
	"testing"

	"docrank/internal/domain"
)

func strp(s string) *string { return &s }

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	st, err := NewStorage(":memory:")
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStorage_SeedAndListCorpus(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	docs := []domain.Document{
		{ID: "doc2", Name: "b.txt", Extension: domain.ExtTXT, Status: domain.StatusAvailable, Text: "dua"},
		{ID: "doc1", Name: "a.pdf", Extension: domain.ExtPDF, Status: domain.StatusAvailable, Text: "satu"},
	}
	if err := st.SeedCorpus(ctx, docs); err != nil {
		t.Fatalf("SeedCorpus: %v", err)
	}
	// reseeding replaces instead of duplicating
	if err := st.SeedCorpus(ctx, docs); err != nil {
		t.Fatalf("SeedCorpus again: %v", err)
	}
	got, err := st.ListCorpus(ctx)
	if err != nil {
		t.Fatalf("ListCorpus: %v", err)
	}
	if len(got) != 2 || got[0].ID != "doc2" || got[1].ID != "doc1" {
		t.Fatalf("corpus must keep insertion order: %+v", got)
	}
	if got[1].Extension != domain.ExtPDF || got[1].Source != domain.SourceServer {
		t.Fatalf("fields not restored: %+v", got[1])
	}
}

func TestStorage_Uploads(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	doc, err := st.AddUpload(ctx, "s1", "catatan.docx", strp("isi dokumen"))
	if err != nil {
		t.Fatalf("AddUpload: %v", err)
	}
	if _, err := st.AddUpload(ctx, "s1", "x.txt", nil); !errors.Is(err, domain.ErrMissingText) {
		t.Fatalf("nil text err=%v", err)
	}
	pool, err := st.ListSession(ctx, "s1")
	if err != nil || len(pool) != 1 {
		t.Fatalf("ListSession=%+v err=%v", pool, err)
	}
	if pool[0].Source != domain.SourceUploaded || pool[0].Status != domain.StatusReady {
		t.Fatalf("upload row=%+v", pool[0])
	}
	if other, _ := st.ListSession(ctx, "s2"); len(other) != 0 {
		t.Fatalf("sessions must be isolated")
	}

	if err := st.MarkProcessed(ctx, "s1", []string{doc.ID}); err != nil {
		t.Fatalf("MarkProcessed: %v", err)
	}
	pool, _ = st.ListSession(ctx, "s1")
	if pool[0].Status != domain.StatusProcessed {
		t.Fatalf("status=%s; want Processed", pool[0].Status)
	}

	if err := st.RemoveUpload(ctx, "s2", doc.ID); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("cross-session remove err=%v", err)
	}
	if err := st.RemoveUpload(ctx, "s1", doc.ID); err != nil {
		t.Fatalf("RemoveUpload: %v", err)
	}
	if pool, _ = st.ListSession(ctx, "s1"); len(pool) != 0 {
		t.Fatalf("pool after remove=%+v", pool)
	}
}

func TestStorage_SessionNamedLikeCorpusIsIsolated(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	if err := st.SeedCorpus(ctx, []domain.Document{{ID: "doc1", Name: "a.txt", Extension: domain.ExtTXT, Status: domain.StatusAvailable, Text: "satu"}}); err != nil {
		t.Fatalf("SeedCorpus: %v", err)
	}
	got, err := st.ListSession(ctx, "corpus")
	if err != nil {
		t.Fatalf("ListSession: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("session %q sees corpus: %+v", "corpus", got)
	}
	if err := st.RemoveUpload(ctx, "corpus", "doc1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("RemoveUpload err=%v; want ErrDocumentNotFound", err)
	}
	corpus, _ := st.ListCorpus(ctx)
	if len(corpus) != 1 {
		t.Fatalf("corpus=%d; want 1", len(corpus))
	}
}
