// Package subtitle parses SRT and WEBVTT caption files into timed entries
// and removes the rolling-caption duplication that auto-generated subtitle
// tracks carry between consecutive cues.
package subtitle

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Timestamp is one caption time position with millisecond precision.
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds int
	Millis  int
}

// Entry is one timestamped caption unit.
type Entry struct {
	Start Timestamp
	End   Timestamp
	Text  string
}

var (
	// timeRangeRe matches "HH:MM:SS,mmm --> HH:MM:SS,mmm" with either comma
	// or period millisecond separators.
	timeRangeRe = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})`)

	timestampRe = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})[,.](\d{1,3})$`)
)

// ParseTimestamp parses "HH:MM:SS,mmm"; a period separator is accepted and
// normalized to the comma form.
func ParseTimestamp(s string) (Timestamp, error) {
	m := timestampRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp: %q", s)
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	se, _ := strconv.Atoi(m[3])
	ms, _ := strconv.Atoi(m[4])
	return Timestamp{Hours: h, Minutes: mi, Seconds: se, Millis: ms}, nil
}

// InSeconds converts the timestamp to seconds from the start of the track.
func (t Timestamp) InSeconds() float64 {
	return float64(t.Hours)*3600 + float64(t.Minutes)*60 + float64(t.Seconds) + float64(t.Millis)/1000
}

// String renders the comma-separated SRT form.
func (t Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d:%02d,%03d", t.Hours, t.Minutes, t.Seconds, t.Millis)
}

// SupportedExtensions lists subtitle file extensions this service accepts.
var SupportedExtensions = map[string]bool{
	".srt": true,
	".vtt": true,
	".txt": true,
}

// IsSupportedExtension checks if a subtitle filename is accepted.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Consolidate joins entry texts into a plain transcript, one entry per line.
func Consolidate(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
