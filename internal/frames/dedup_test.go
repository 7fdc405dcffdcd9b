package frames

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func writeJPEG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDeduplicateRemovesNearDuplicates(t *testing.T) {
	dir := t.TempDir()
	records := []Record{
		{Path: writeJPEG(t, dir, "a.jpg", solidImage(64, 36, 100)), Timestamp: 0, Kind: KindPrimary},
		{Path: writeJPEG(t, dir, "b.jpg", solidImage(64, 36, 101)), Timestamp: 2, Kind: KindSecondary},
		{Path: writeJPEG(t, dir, "c.jpg", solidImage(64, 36, 250)), Timestamp: 4, Kind: KindPrimary},
	}
	kept := Deduplicate(records, 0.97, 32, 18)
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept frames, got %d", len(kept))
	}
	if kept[0].Path != records[0].Path || kept[1].Path != records[2].Path {
		t.Errorf("wrong frames kept: %+v", kept)
	}
	if _, err := os.Stat(records[1].Path); !os.IsNotExist(err) {
		t.Error("duplicate frame file should be removed from disk")
	}
}

func TestDeduplicateKeepsFirst(t *testing.T) {
	dir := t.TempDir()
	records := []Record{
		{Path: writeJPEG(t, dir, "a.jpg", solidImage(64, 36, 50))},
		{Path: writeJPEG(t, dir, "b.jpg", solidImage(64, 36, 50))},
	}
	kept := Deduplicate(records, 0, 0, 0) // defaults
	if len(kept) != 1 || kept[0].Path != records[0].Path {
		t.Fatalf("expected only the first frame, got %+v", kept)
	}
}

func TestDeduplicateDistinctAllKept(t *testing.T) {
	dir := t.TempDir()
	records := []Record{
		{Path: writeJPEG(t, dir, "a.jpg", solidImage(64, 36, 0))},
		{Path: writeJPEG(t, dir, "b.jpg", solidImage(64, 36, 128))},
		{Path: writeJPEG(t, dir, "c.jpg", solidImage(64, 36, 255))},
	}
	kept := Deduplicate(records, 0.97, 32, 18)
	if len(kept) != 3 {
		t.Fatalf("expected all 3 distinct frames kept, got %d", len(kept))
	}
}

func TestDeduplicateMissingFileDropped(t *testing.T) {
	dir := t.TempDir()
	records := []Record{
		{Path: filepath.Join(dir, "missing.jpg")},
		{Path: writeJPEG(t, dir, "b.jpg", solidImage(64, 36, 80))},
	}
	kept := Deduplicate(records, 0.97, 32, 18)
	if len(kept) != 1 || kept[0].Path != records[1].Path {
		t.Fatalf("expected only readable frame, got %+v", kept)
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	if kept := Deduplicate(nil, 0.97, 32, 18); len(kept) != 0 {
		t.Errorf("expected empty result, got %v", kept)
	}
}
