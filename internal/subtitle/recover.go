package subtitle

import (
	"io"
	"strings"
)

// ParseRelaxed reads a subtitle file without relying on blank-line block
// separators, which downloaded auto-captions frequently omit or misplace.
//
// It scans line by line: a timestamp-range line closes the open block and
// starts a new one; purely numeric lines are sequence counters and are
// skipped; any other non-blank line is dialogue for the open block, unless
// the following line is itself a timestamp line (that lookahead keeps an
// upcoming sequence number from being misread as dialogue). Entries may
// carry empty text; the deduplication stage filters those.
func ParseRelaxed(r io.Reader) ([]Entry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	content := strings.TrimPrefix(string(raw), "\uFEFF")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")

	var entries []Entry
	var cur Entry
	open := false

	flush := func() {
		if open {
			entries = append(entries, cur)
		}
	}

	for i, line := range lines {
		line = strings.TrimSpace(line)

		if strings.Contains(line, "-->") {
			if m := timeRangeRe.FindStringSubmatch(line); m != nil {
				s, err1 := ParseTimestamp(m[1])
				e, err2 := ParseTimestamp(m[2])
				if err1 == nil && err2 == nil {
					flush()
					cur = Entry{Start: s, End: e}
					open = true
					continue
				}
			}
		}

		if line == "" || isDigits(line) {
			continue
		}

		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if strings.Contains(next, "-->") && timeRangeRe.MatchString(next) {
				continue
			}
		}

		if !open {
			continue
		}
		if text := stripCueMarkup(line); text != "" {
			if cur.Text != "" {
				cur.Text += " "
			}
			cur.Text += text
		}
	}
	flush()

	return entries, nil
}
