package chunker

import (
	"sort"
	"strings"

	"github.com/dgallion1/vidnotes/internal/subtitle"
)

// Config holds the token budgets for chunking, normally chosen by detected
// dominant language.
type Config struct {
	ChunkSize int
	Overlap   int
}

func (c Config) normalized() Config {
	if c.ChunkSize < 1 {
		c.ChunkSize = 1
	}
	if c.Overlap < 0 {
		c.Overlap = 0
	}
	if c.Overlap >= c.ChunkSize {
		c.Overlap = c.ChunkSize - 1
	}
	return c
}

// Chunk is one token-bounded slice of the entry sequence. StartIndex and
// EndIndex are half-open bounds into the input; the union of all chunk index
// ranges covers the input exactly.
type Chunk struct {
	Text       string
	StartTime  float64
	EndTime    float64
	StartIndex int
	EndIndex   int
}

// Split walks the entries with a prefix-sum token array, emitting chunks of
// roughly cfg.ChunkSize tokens that overlap by roughly cfg.Overlap tokens.
// Chunks never split inside an entry, always contain at least one entry, and
// each chunk starts strictly after the previous one, so the walk terminates
// within len(entries) iterations.
func Split(entries []subtitle.Entry, cfg Config) []Chunk {
	if len(entries) == 0 {
		return nil
	}
	cfg = cfg.normalized()

	n := len(entries)
	cum := make([]int, n+1)
	for i, e := range entries {
		cum[i+1] = cum[i] + EntryTokens(e)
	}

	var chunks []Chunk
	start := 0
	for start < n {
		target := cum[start] + cfg.ChunkSize
		// Smallest end > start with cum[end] >= target.
		end := start + 1 + sort.Search(n-start, func(i int) bool {
			return cum[start+1+i] >= target
		})
		if end > n {
			end = n
		}

		var texts []string
		for _, e := range entries[start:end] {
			if t := strings.TrimSpace(e.Text); t != "" {
				texts = append(texts, t)
			}
		}
		chunks = append(chunks, Chunk{
			Text:       strings.Join(texts, "\n"),
			StartTime:  entries[start].Start.InSeconds(),
			EndTime:    entries[end-1].End.InSeconds(),
			StartIndex: start,
			EndIndex:   end,
		})

		if end >= n {
			break
		}

		back := cum[end] - cfg.Overlap
		if back < 0 {
			back = 0
		}
		next := sort.Search(n+1, func(i int) bool {
			return cum[i] >= back
		})
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}
