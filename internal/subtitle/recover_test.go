package subtitle

import (
	"strings"
	"testing"
)

func TestParseRelaxedNoBlankLines(t *testing.T) {
	// Sequence numbers directly precede timestamps with no separating blank
	// lines; the lookahead must keep them out of the dialogue.
	input := "1\n00:00:00,000 --> 00:00:02,000\nfirst caption\n2\n00:00:02,000 --> 00:00:04,000\nsecond caption\n"
	entries, err := ParseRelaxed(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRelaxed failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "first caption" {
		t.Errorf("entry 0 text = %q", entries[0].Text)
	}
	if entries[1].Text != "second caption" {
		t.Errorf("entry 1 text = %q", entries[1].Text)
	}
}

func TestParseRelaxedEmptyTextKept(t *testing.T) {
	input := "00:00:00,000 --> 00:00:01,000\n\n00:00:01,000 --> 00:00:02,000\nspoken\n"
	entries, err := ParseRelaxed(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRelaxed failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "" {
		t.Errorf("entry 0 text = %q, want empty", entries[0].Text)
	}
}

func TestParseRelaxedLeadingJunkIgnored(t *testing.T) {
	input := "WEBVTT\nKind: captions\nLanguage: en\n\n00:00:00.000 --> 00:00:01.000\nhello\n"
	entries, err := ParseRelaxed(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRelaxed failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "hello" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestParseRelaxedBOMStripped(t *testing.T) {
	input := "\uFEFF00:00:00,000 --> 00:00:01,000\nhello\n"
	entries, err := ParseRelaxed(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRelaxed failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "hello" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestParseRelaxedMultiLineDialogue(t *testing.T) {
	input := "00:00:00,000 --> 00:00:02,000\nline one\nline two\n"
	entries, err := ParseRelaxed(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRelaxed failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "line one line two" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
