// Package frames extracts keyframes from a video: adaptive sampling within
// a time window, perceptual deduplication of the sampled set, and
// proportional allocation of frames to text sections.
package frames

import (
	"context"
	"errors"
	"image"
)

// Kind classifies a saved frame by how strongly it differed from the
// previously saved frame.
type Kind string

const (
	KindPrimary   Kind = "primary"
	KindSecondary Kind = "secondary"
)

// Record is one saved frame on disk.
type Record struct {
	Path      string  `json:"path"`
	Timestamp float64 `json:"timestamp"`
	Kind      Kind    `json:"kind"`
}

// ErrSourceUnavailable reports that a video source could not be opened for
// reading. Callers treat this as fatal for the window that requested it.
var ErrSourceUnavailable = errors.New("video source unavailable")

// FrameReader yields decoded frames from one window walk. Next returns
// io.EOF when the window is exhausted. Readers are not safe for concurrent
// use; each sampling pass owns its reader exclusively.
type FrameReader interface {
	Next() (image.Image, float64, error)
	Close() error
}

// Source is an open video with frame-accurate access by time.
type Source interface {
	FrameRate() float64
	// Window returns a reader over frames in [start, end) seconds, keeping
	// every stride-th frame.
	Window(ctx context.Context, start, end float64, stride int) (FrameReader, error)
}

// Opener opens video files into Sources.
type Opener interface {
	Open(ctx context.Context, path string) (Source, error)
}
