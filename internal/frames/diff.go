package frames

import "image"

// grayThumb downscales an image to w×h by nearest-neighbor sampling and
// converts it to normalized grayscale in [0,1] using Rec.601 luma weights.
// All frame comparisons work on these thumbnails so cost is independent of
// source resolution.
func grayThumb(img image.Image, w, h int) []float64 {
	bounds := img.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()
	out := make([]float64, w*h)
	if sw == 0 || sh == 0 {
		return out
	}
	for y := 0; y < h; y++ {
		sy := bounds.Min.Y + y*sh/h
		for x := 0; x < w; x++ {
			sx := bounds.Min.X + x*sw/w
			r, g, b, _ := img.At(sx, sy).RGBA()
			luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			out[y*w+x] = luma / 65535.0
		}
	}
	return out
}

// BlockScore compares two images on an rows×cols grid over w×h thumbnails
// and returns the maximum per-block mean absolute difference, in [0,1].
// Taking the maximum rather than the average keeps a single changed region,
// like one corner of a slide, from being diluted by a static background.
func BlockScore(a, b image.Image, w, h, rows, cols int) float64 {
	ta := grayThumb(a, w, h)
	tb := grayThumb(b, w, h)
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	maxScore := 0.0
	for br := 0; br < rows; br++ {
		y0, y1 := br*h/rows, (br+1)*h/rows
		for bc := 0; bc < cols; bc++ {
			x0, x1 := bc*w/cols, (bc+1)*w/cols
			sum := 0.0
			count := 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					d := ta[y*w+x] - tb[y*w+x]
					if d < 0 {
						d = -d
					}
					sum += d
					count++
				}
			}
			if count > 0 {
				if score := sum / float64(count); score > maxScore {
					maxScore = score
				}
			}
		}
	}
	return maxScore
}

// Similarity returns 1 minus the normalized mean-squared difference of the
// two images' w×h thumbnails. Identical frames score 1.0.
func Similarity(a, b image.Image, w, h int) float64 {
	ta := grayThumb(a, w, h)
	tb := grayThumb(b, w, h)
	sum := 0.0
	for i := range ta {
		d := ta[i] - tb[i]
		sum += d * d
	}
	return 1 - sum/float64(len(ta))
}
