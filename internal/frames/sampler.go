package frames

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Config controls sampling stride, adaptive keyframe thresholds, and the
// comparison geometry.
type Config struct {
	// Interval is the wall-clock sampling stride in seconds.
	Interval float64
	// Adaptive enables change-score keyframe selection. When false every
	// strided frame is saved as Primary.
	Adaptive bool

	PrimaryThreshold   float64
	SecondaryThreshold float64
	MinPrimaryGap      float64
	MinSecondaryGap    float64

	GridRows    int
	GridCols    int
	ScaleWidth  int
	ScaleHeight int
	JPEGQuality int
}

// DefaultConfig returns the sampling parameters tuned for lecture-style
// video: a strong localized change promotes a Primary keyframe quickly,
// while slow drift accumulates into a Secondary keyframe at most every
// MinSecondaryGap seconds.
func DefaultConfig() Config {
	return Config{
		Interval:           2,
		Adaptive:           true,
		PrimaryThreshold:   0.30,
		SecondaryThreshold: 0.10,
		MinPrimaryGap:      2,
		MinSecondaryGap:    10,
		GridRows:           4,
		GridCols:           4,
		ScaleWidth:         128,
		ScaleHeight:        72,
		JPEGQuality:        90,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.GridRows < 1 {
		c.GridRows = d.GridRows
	}
	if c.GridCols < 1 {
		c.GridCols = d.GridCols
	}
	if c.ScaleWidth < 1 {
		c.ScaleWidth = d.ScaleWidth
	}
	if c.ScaleHeight < 1 {
		c.ScaleHeight = d.ScaleHeight
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = d.JPEGQuality
	}
	return c
}

// Sampler walks a video window at a fixed stride and saves the frames that
// differ enough from the last saved frame.
type Sampler struct {
	cfg Config
	log *slog.Logger
}

func NewSampler(cfg Config, log *slog.Logger) *Sampler {
	return &Sampler{cfg: cfg.normalized(), log: log}
}

// SampleWindow extracts keyframes from src over [start, end) seconds and
// writes them as JPEGs into dir, which must exist.
//
// A window that cannot be opened is an error. A read failure mid-window
// ends the walk early and returns the frames saved so far; partial output
// is preferred over losing the whole window.
func (s *Sampler) SampleWindow(ctx context.Context, src Source, start, end float64, dir string) ([]Record, error) {
	fps := src.FrameRate()
	if fps <= 0 {
		fps = 30
	}
	stride := int(fps * s.cfg.Interval)
	if stride < 1 {
		stride = 1
	}

	reader, err := src.Window(ctx, start, end, stride)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var (
		records   []Record
		lastSaved image.Image
		lastTime  float64
		skipped   int
	)
	for {
		img, ts, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.log.Warn("frame read failed mid-window, keeping partial result",
				"error", err, "start", start, "end", end, "saved", len(records))
			break
		}

		kind := Kind("")
		switch {
		case lastSaved == nil:
			kind = KindPrimary
		case !s.cfg.Adaptive:
			kind = KindPrimary
		default:
			score := BlockScore(lastSaved, img, s.cfg.ScaleWidth, s.cfg.ScaleHeight, s.cfg.GridRows, s.cfg.GridCols)
			elapsed := ts - lastTime
			switch {
			case score >= s.cfg.PrimaryThreshold && elapsed >= s.cfg.MinPrimaryGap:
				kind = KindPrimary
			case score >= s.cfg.SecondaryThreshold && elapsed >= s.cfg.MinSecondaryGap:
				kind = KindSecondary
			default:
				skipped++
				continue
			}
		}

		path, err := s.saveFrame(dir, len(records), ts, img)
		if err != nil {
			return records, fmt.Errorf("save frame: %w", err)
		}
		records = append(records, Record{Path: path, Timestamp: ts, Kind: kind})
		lastSaved = img
		lastTime = ts
	}

	s.log.Debug("window sampled",
		"start", start, "end", end, "saved", len(records), "skipped", skipped)
	return records, nil
}

func (s *Sampler) saveFrame(dir string, index int, ts float64, img image.Image) (string, error) {
	total := int(ts)
	name := fmt.Sprintf("frame_%03d_%02d%02d%02d.jpg", index, total/3600, total/60%60, total%60)
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: s.cfg.JPEGQuality}); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
