package subtitle

import (
	"strings"
	"testing"
)

func TestLongestOverlap(t *testing.T) {
	tests := []struct {
		prev, cur  string
		minOverlap int
		want       int
	}{
		{"abcdef", "defghi", 3, 3},
		{"abcdef", "defghi", 4, 0},
		{"abc", "xyz", 1, 0},
		{"hello world", "world peace", 4, 5},
		{"", "abc", 1, 0},
		{"abc", "", 1, 0},
		{"same", "same", 2, 4},
		{"你好世界", "世界和平", 2, 2},
	}
	for _, tt := range tests {
		if got := LongestOverlap(tt.prev, tt.cur, tt.minOverlap); got != tt.want {
			t.Errorf("LongestOverlap(%q, %q, %d) = %d, want %d",
				tt.prev, tt.cur, tt.minOverlap, got, tt.want)
		}
	}
}

func TestDeduplicateRollingCaptions(t *testing.T) {
	entries := []Entry{
		{Text: "hello world"},
		{Text: "world peace"},
	}
	out := Deduplicate(entries, 4)
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0].Text != "hello world" {
		t.Errorf("entry 0 = %q", out[0].Text)
	}
	if out[1].Text != "peace" {
		t.Errorf("entry 1 = %q, want overlap removed", out[1].Text)
	}
}

func TestDeduplicateChainsRetainedText(t *testing.T) {
	// The second comparison must use the retained "peace", not the raw
	// "world peace", so the third entry keeps its full text.
	entries := []Entry{
		{Text: "hello world"},
		{Text: "world peace"},
		{Text: "world peace treaty"},
	}
	out := Deduplicate(entries, 4)
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	if out[2].Text != "world peace treaty" {
		t.Errorf("entry 2 = %q", out[2].Text)
	}
}

func TestDeduplicateDropsTinyRemainder(t *testing.T) {
	entries := []Entry{
		{Text: "counting down"},
		{Text: "downs"}, // retained text after overlap removal is one rune
		{Text: "   "},
		{Text: ""},
		{Text: "fresh content"},
	}
	out := Deduplicate(entries, 4)
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(out), out)
	}
	if out[1].Text != "fresh content" {
		t.Errorf("entry 1 = %q", out[1].Text)
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	entries := []Entry{
		{Text: "the quick brown fox"},
		{Text: "brown fox jumps over"},
		{Text: "jumps over the lazy dog"},
	}
	once := Deduplicate(entries, 4)
	twice := Deduplicate(once, 4)
	if len(once) != len(twice) {
		t.Fatalf("length changed on second pass: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Text != twice[i].Text {
			t.Errorf("entry %d changed: %q vs %q", i, once[i].Text, twice[i].Text)
		}
	}
}

func TestDeduplicateEndToEnd(t *testing.T) {
	input := "1\n00:00:00,000 --> 00:00:02,000\nhello world\n2\n00:00:02,000 --> 00:00:04,000\nworld peace\n"
	entries, err := ParseRelaxed(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRelaxed failed: %v", err)
	}
	out := Deduplicate(entries, DefaultMinOverlap)
	if len(out) != 2 || out[1].Text != "peace" {
		t.Fatalf("unexpected result: %+v", out)
	}
}
