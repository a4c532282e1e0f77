package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lrcloud/internal/history"
	"lrcloud/internal/testsupport"
)

func TestRecordAndRecall(t *testing.T) {
	store := testsupport.MustOpenHistory(t)

	ctx := context.Background()
	rec, err := store.RecordUpload(ctx, history.Record{
		AssetID:     "asset-1",
		CatalogID:   "cat-1",
		AlbumID:     "alb-1",
		FileName:    "img.jpg",
		Fingerprint: "fp-1",
		Bytes:       64,
	})
	if err != nil {
		t.Fatalf("RecordUpload returned error: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected record id to be assigned")
	}
	if rec.UploadedAt.IsZero() {
		t.Fatal("expected uploaded_at to be stamped")
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 1 || recent[0].AssetID != "asset-1" || recent[0].AlbumID != "alb-1" {
		t.Fatalf("unexpected records: %#v", recent)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := testsupport.MustOpenHistory(t)

	ctx := context.Background()
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		_, err := store.RecordUpload(ctx, history.Record{
			AssetID:     name,
			CatalogID:   "cat-1",
			FileName:    name,
			Fingerprint: "fp-" + name,
			UploadedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordUpload returned error: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 || recent[0].FileName != "c.jpg" || recent[1].FileName != "b.jpg" {
		t.Fatalf("unexpected order: %#v", recent)
	}
}

func TestFindByFingerprint(t *testing.T) {
	store := testsupport.MustOpenHistory(t)

	ctx := context.Background()
	if _, err := store.RecordUpload(ctx, history.Record{
		AssetID:     "asset-1",
		CatalogID:   "cat-1",
		FileName:    "img.jpg",
		Fingerprint: "fp-dup",
	}); err != nil {
		t.Fatalf("RecordUpload returned error: %v", err)
	}

	found, err := store.FindByFingerprint(ctx, "fp-dup")
	if err != nil {
		t.Fatalf("FindByFingerprint returned error: %v", err)
	}
	if found == nil || found.AssetID != "asset-1" {
		t.Fatalf("expected to find recorded upload, got %#v", found)
	}

	missing, err := store.FindByFingerprint(ctx, "fp-unknown")
	if err != nil {
		t.Fatalf("FindByFingerprint returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown fingerprint, got %#v", missing)
	}
}

func TestRecordUploadRequiresFingerprint(t *testing.T) {
	store := testsupport.MustOpenHistory(t)

	_, err := store.RecordUpload(context.Background(), history.Record{AssetID: "asset-1"})
	if err == nil {
		t.Fatal("expected error when fingerprint missing")
	}
}

func TestOpenRejectsSecondProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = first.Close() })

	if _, err := history.Open(path); err == nil {
		t.Fatal("expected second open to fail while lock is held")
	}
}
