// Package render assembles summarized sections and their allocated frames
// into a single Markdown notes document.
package render

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/vidnotes/internal/frames"
	"github.com/dgallion1/vidnotes/internal/summarize"
)

// Part is one chunk's render input: its sections and the frames allocated
// to them. Alloc[i] frames go after section i; its length matches Sections.
type Part struct {
	Index    int
	Sections []summarize.Section
	Frames   []frames.Record
	Alloc    []int
}

// BuildDocument renders the final notes Markdown. Frame paths are written
// relative to baseDir, so the document stays portable when the document
// directory moves as a whole.
func BuildDocument(title, sourceName string, parts []Part, baseDir string) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Generated %s from %s.\n\n---\n\n", time.Now().Format("2006-01-02 15:04"), sourceName)

	for _, part := range parts {
		frameIdx := 0
		for i, section := range part.Sections {
			sb.WriteString(section.Body)
			sb.WriteString("\n\n")

			count := 0
			if i < len(part.Alloc) {
				count = part.Alloc[i]
			}
			for j := 0; j < count && frameIdx < len(part.Frames); j++ {
				writeFrame(&sb, part.Frames[frameIdx], baseDir)
				frameIdx++
			}
		}
		// Frames left over when sections ran short go at the end of the part.
		for ; frameIdx < len(part.Frames); frameIdx++ {
			writeFrame(&sb, part.Frames[frameIdx], baseDir)
		}
	}
	return sb.String()
}

func writeFrame(sb *strings.Builder, rec frames.Record, baseDir string) {
	fmt.Fprintf(sb, "![frame %s](%s)\n\n", formatTime(rec.Timestamp), relURL(baseDir, rec.Path))
}

// relURL converts an absolute frame path to a URL-escaped path relative to
// the document directory.
func relURL(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		rel = path
	}
	u := url.URL{Path: filepath.ToSlash(rel)}
	return u.EscapedPath()
}

func formatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}
