// Package docstore lays out processed documents on disk: one directory per
// document holding the consolidated transcript, extracted frames grouped by
// chunk, the rendered notes, and a metadata record.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Meta describes one stored document.
type Meta struct {
	DocID      string    `json:"doc_id"`
	Title      string    `json:"title"`
	SourceName string    `json:"source_name"`
	VideoPath  string    `json:"video_path,omitempty"`
	Language   string    `json:"language"`
	Chunks     int       `json:"chunks"`
	Frames     int       `json:"frames"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store manages the output directory tree.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

var errBadDocID = errors.New("invalid document id")

// validDocID rejects ids that could escape the root directory.
func validDocID(docID string) bool {
	if docID == "" || docID == "." || docID == ".." {
		return false
	}
	return !strings.ContainsAny(docID, "/\\")
}

// DocDir returns the directory for a document without creating it.
func (s *Store) DocDir(docID string) (string, error) {
	if !validDocID(docID) {
		return "", fmt.Errorf("%w: %q", errBadDocID, docID)
	}
	return filepath.Join(s.root, docID), nil
}

// EnsureDoc creates the document directory and returns its path.
func (s *Store) EnsureDoc(docID string) (string, error) {
	dir, err := s.DocDir(docID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create doc dir: %w", err)
	}
	return dir, nil
}

// WriteTranscript stores the consolidated plain-text transcript.
func (s *Store) WriteTranscript(docID, transcript string) error {
	dir, err := s.DocDir(docID)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "transcript.txt"), []byte(transcript), 0o644)
}

// ChunkFrameDir creates and returns the frame directory for one chunk,
// named by chunk index and time range so the tree is browsable by hand.
func (s *Store) ChunkFrameDir(docID string, chunkIdx int, start, end float64) (string, error) {
	dir, err := s.DocDir(docID)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("chunk_%02d_%s-%s", chunkIdx, compactTime(start), compactTime(end))
	frameDir := filepath.Join(dir, "frames", name)
	if err := os.MkdirAll(frameDir, 0o755); err != nil {
		return "", fmt.Errorf("create frame dir: %w", err)
	}
	return frameDir, nil
}

func compactTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02dm%02ds", total/60, total%60)
}

// WriteNotes stores the rendered Markdown notes.
func (s *Store) WriteNotes(docID, notes string) error {
	dir, err := s.DocDir(docID)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "notes.md"), []byte(notes), 0o644)
}

// WriteMeta stores the document metadata record.
func (s *Store) WriteMeta(meta Meta) error {
	dir, err := s.DocDir(meta.DocID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "meta.json"), data, 0o644)
}

// ReadMeta loads one document's metadata record.
func (s *Store) ReadMeta(docID string) (Meta, error) {
	dir, err := s.DocDir(docID)
	if err != nil {
		return Meta{}, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		return Meta{}, err
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return Meta{}, fmt.Errorf("parse meta: %w", err)
	}
	return meta, nil
}

// List returns metadata for every stored document, newest first. Directories
// without a readable meta.json are skipped.
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store root: %w", err)
	}
	var metas []Meta
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.ReadMeta(e.Name())
		if err != nil {
			continue
		}
		metas = append(metas, meta)
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CreatedAt.After(metas[j].CreatedAt)
	})
	return metas, nil
}

// Delete removes a document and everything under it.
func (s *Store) Delete(docID string) error {
	dir, err := s.DocDir(docID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.ErrNotExist
	}
	return os.RemoveAll(dir)
}
