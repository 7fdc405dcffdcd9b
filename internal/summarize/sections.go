package summarize

import (
	"strings"

	"github.com/dgallion1/vidnotes/internal/chunker"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is one heading-delimited slice of a summary, weighted by token
// count for proportional frame allocation.
type Section struct {
	Heading string
	Body    string
	Weight  int
}

// SplitSections divides Markdown notes at top-level headings. Each section's
// Body holds the original Markdown from its heading line up to the next
// heading, so reassembly is lossless. Text before the first heading becomes
// an unheaded preamble section. Notes with no headings yield one section.
func SplitSections(summary string) []Section {
	src := []byte(summary)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	type mark struct {
		offset  int
		heading string
	}
	var marks []mark
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		// Lines() covers the heading text, not the "#" marker; walk back
		// to the start of the line.
		off := h.Lines().At(0).Start
		for off > 0 && src[off-1] != '\n' {
			off--
		}
		marks = append(marks, mark{offset: off, heading: string(h.Text(src))})
	}

	var sections []Section
	add := func(heading, body string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		weight := chunker.CountTokens(body)
		if weight < 1 {
			weight = 1
		}
		sections = append(sections, Section{Heading: heading, Body: body, Weight: weight})
	}

	if len(marks) == 0 {
		add("", summary)
		return sections
	}

	if marks[0].offset > 0 {
		add("", string(src[:marks[0].offset]))
	}
	for i, m := range marks {
		end := len(src)
		if i+1 < len(marks) {
			end = marks[i+1].offset
		}
		add(m.heading, string(src[m.offset:end]))
	}
	return sections
}

// Weights extracts the weight vector from a section list.
func Weights(sections []Section) []int {
	w := make([]int, len(sections))
	for i, s := range sections {
		w[i] = s.Weight
	}
	return w
}
