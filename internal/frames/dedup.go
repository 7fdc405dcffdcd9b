package frames

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
)

// DefaultDedupSimilarity is the similarity at or above which two frames are
// considered duplicates. Stricter than the sampler's secondary threshold so
// this pass only removes frames that slipped through debouncing.
const DefaultDedupSimilarity = 0.97

// Deduplicate filters records in order, keeping a frame only if it is
// visually distinct from every frame kept before it. Discarded frames are
// removed from disk. Records whose files cannot be read are dropped.
func Deduplicate(records []Record, threshold float64, scaleW, scaleH int) []Record {
	if threshold <= 0 {
		threshold = DefaultDedupSimilarity
	}
	if scaleW < 1 {
		scaleW = 128
	}
	if scaleH < 1 {
		scaleH = 72
	}

	kept := make([]Record, 0, len(records))
	var refs [][]float64
	for _, rec := range records {
		img, err := loadJPEG(rec.Path)
		if err != nil {
			continue
		}
		thumb := grayThumb(img, scaleW, scaleH)
		dup := false
		for _, ref := range refs {
			if thumbSimilarity(thumb, ref) >= threshold {
				dup = true
				break
			}
		}
		if dup {
			_ = os.Remove(rec.Path)
			continue
		}
		kept = append(kept, rec)
		refs = append(refs, thumb)
	}
	return kept
}

func thumbSimilarity(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return 1 - sum/float64(len(a))
}

func loadJPEG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
