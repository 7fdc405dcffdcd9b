package summarize

import (
	"fmt"
	"strings"

	"github.com/dgallion1/vidnotes/internal/chunker"
)

// Request is one chunk of transcript to summarize, with its position in the
// whole transcript so the model keeps continuity between parts.
type Request struct {
	Text     string
	Part     int
	Total    int
	Language chunker.Language
}

const notesPrompt = `You are turning a lecture video transcript into clear study notes. The transcript below is part %d of %d.

Write well-structured Markdown notes for this part:

- Use "##" headings to mark each distinct topic or segment
- Under each heading, summarize the key points as short paragraphs or bullet lists
- Keep terminology from the transcript; do not invent facts that are not in it
- Preserve any numbers, names, and definitions exactly as spoken
- Skip filler, greetings, and repeated phrases
- Do not mention that this is a transcript or refer to "the speaker"

Respond with ONLY the Markdown notes, no preamble.`

// BuildPrompt renders the summarization prompt for one chunk.
func BuildPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(notesPrompt, req.Part, req.Total))
	if req.Language == chunker.LanguageCJK {
		sb.WriteString("\nWrite the notes in Chinese.")
	}
	sb.WriteString("\n\n---\n")
	sb.WriteString(req.Text)
	return sb.String()
}
