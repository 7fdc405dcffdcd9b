package subtitle

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// inlineTimeTagRe matches WEBVTT inline karaoke timestamps like
// <00:00:01.000>, which are not well-formed markup and must be removed
// before tag stripping.
var inlineTimeTagRe = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}[.,]\d{3}>`)

// stripCueMarkup removes WEBVTT cue styling tags (<c>, <v Speaker>, <b>, ...)
// and resolves character entities, leaving plain dialogue text.
func stripCueMarkup(line string) string {
	if !strings.ContainsAny(line, "<&") {
		return line
	}
	line = inlineTimeTagRe.ReplaceAllString(line, "")
	z := html.NewTokenizer(strings.NewReader(line))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

// Parse reads an SRT or WEBVTT file and returns its timed entries.
//
// Blocks are separated by blank lines. Within a block, a timestamp-range
// line sets the time range, purely numeric lines are sequence counters and
// are discarded, and all other lines are dialogue joined by single spaces.
// Blocks missing a time range or dialogue are dropped silently; malformed
// input never fails, it only yields fewer entries.
func Parse(r io.Reader) ([]Entry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	content := strings.TrimPrefix(string(raw), "\uFEFF")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if strings.HasPrefix(content, "WEBVTT") {
		if i := strings.Index(content, "\n\n"); i >= 0 {
			content = content[i+2:]
		} else {
			content = ""
		}
	}

	var entries []Entry
	for _, block := range strings.Split(strings.TrimSpace(content), "\n\n") {
		var (
			start, end Timestamp
			haveTime   bool
			dialogue   []string
		)
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.Contains(line, "-->") {
				if m := timeRangeRe.FindStringSubmatch(line); m != nil {
					s, err1 := ParseTimestamp(m[1])
					e, err2 := ParseTimestamp(m[2])
					if err1 == nil && err2 == nil {
						start, end, haveTime = s, e, true
					}
					continue
				}
			}
			if isDigits(line) {
				continue
			}
			if text := stripCueMarkup(line); text != "" {
				dialogue = append(dialogue, text)
			}
		}
		if haveTime && len(dialogue) > 0 {
			entries = append(entries, Entry{
				Start: start,
				End:   end,
				Text:  strings.Join(dialogue, " "),
			})
		}
	}
	return entries, nil
}
