package summarize

import (
	"strings"
	"testing"
)

func TestSplitSectionsByHeading(t *testing.T) {
	summary := "## Intro\n\nOpening remarks about the topic.\n\n## Details\n\nThe main content with more words in it.\n\n- a bullet\n- another bullet\n"
	sections := SplitSections(summary)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Heading != "Intro" {
		t.Errorf("section 0 heading = %q", sections[0].Heading)
	}
	if !strings.HasPrefix(sections[0].Body, "## Intro") {
		t.Errorf("section 0 body should keep the heading line: %q", sections[0].Body)
	}
	if !strings.Contains(sections[1].Body, "another bullet") {
		t.Errorf("section 1 body missing list content: %q", sections[1].Body)
	}
	if sections[1].Weight <= sections[0].Weight {
		t.Errorf("longer section should weigh more: %d vs %d",
			sections[1].Weight, sections[0].Weight)
	}
}

func TestSplitSectionsPreamble(t *testing.T) {
	summary := "Some notes before any heading.\n\n## First\n\nBody text.\n"
	sections := SplitSections(summary)
	if len(sections) != 2 {
		t.Fatalf("expected preamble + 1 section, got %d", len(sections))
	}
	if sections[0].Heading != "" {
		t.Errorf("preamble heading = %q, want empty", sections[0].Heading)
	}
	if !strings.Contains(sections[0].Body, "before any heading") {
		t.Errorf("preamble body = %q", sections[0].Body)
	}
}

func TestSplitSectionsNoHeadings(t *testing.T) {
	sections := SplitSections("Just a flat paragraph of notes.")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Heading != "" || sections[0].Weight < 1 {
		t.Errorf("unexpected section: %+v", sections[0])
	}
}

func TestSplitSectionsEmpty(t *testing.T) {
	if sections := SplitSections("   \n"); len(sections) != 0 {
		t.Errorf("expected no sections for blank input, got %+v", sections)
	}
}

func TestSplitSectionsLossless(t *testing.T) {
	summary := "## A\n\none two three\n\n## B\n\nfour five\n"
	sections := SplitSections(summary)
	var sb strings.Builder
	for _, s := range sections {
		sb.WriteString(s.Body)
		sb.WriteString("\n\n")
	}
	joined := sb.String()
	for _, want := range []string{"## A", "one two three", "## B", "four five"} {
		if !strings.Contains(joined, want) {
			t.Errorf("reassembled notes missing %q", want)
		}
	}
}

func TestWeights(t *testing.T) {
	sections := []Section{{Weight: 3}, {Weight: 7}}
	got := Weights(sections)
	if len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Errorf("Weights = %v", got)
	}
}
