package frames

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpeg opens video files by shelling out to ffprobe for stream metadata
// and ffmpeg for decoding. Frames are streamed as an MJPEG image2pipe and
// decoded one JPEG at a time, so memory stays bounded regardless of video
// length.
type FFmpeg struct {
	FFmpegBin  string
	FFprobeBin string
}

// NewFFmpeg returns an opener using the given binaries, defaulting to
// "ffmpeg" and "ffprobe" on PATH.
func NewFFmpeg(ffmpegBin, ffprobeBin string) *FFmpeg {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	return &FFmpeg{FFmpegBin: ffmpegBin, FFprobeBin: ffprobeBin}
}

type ffmpegSource struct {
	bin  string
	path string
	fps  float64
}

// Open probes the video's frame rate. Probe failures, including a missing
// file, wrap ErrSourceUnavailable.
func (f *FFmpeg) Open(ctx context.Context, path string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	cmd := exec.CommandContext(ctx, f.FFprobeBin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: probe %s: %v", ErrSourceUnavailable, path, err)
	}
	fps, err := parseFrameRate(strings.TrimSpace(string(out)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return &ffmpegSource{bin: f.FFmpegBin, path: path, fps: fps}, nil
}

// parseFrameRate handles ffprobe's rational form ("30000/1001") as well as
// a plain decimal.
func parseFrameRate(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty frame rate")
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, fmt.Errorf("bad frame rate %q", s)
		}
		return n / d, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("bad frame rate %q", s)
	}
	return v, nil
}

func (s *ffmpegSource) FrameRate() float64 { return s.fps }

func (s *ffmpegSource) Window(ctx context.Context, start, end float64, stride int) (FrameReader, error) {
	if stride < 1 {
		stride = 1
	}
	cmd := exec.CommandContext(ctx, s.bin,
		"-hide_banner",
		"-loglevel", "error",
		"-ss", fmt.Sprintf("%.3f", start),
		"-to", fmt.Sprintf("%.3f", end),
		"-i", s.path,
		"-vf", fmt.Sprintf(`select=not(mod(n\,%d))`, stride),
		"-vsync", "vfr",
		"-f", "image2pipe",
		"-c:v", "mjpeg",
		"-q:v", "2",
		"pipe:1")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start ffmpeg: %v", ErrSourceUnavailable, err)
	}
	return &windowReader{
		cmd:   cmd,
		r:     bufio.NewReaderSize(stdout, 1<<16),
		start: start,
		step:  float64(stride) / s.fps,
	}, nil
}

type windowReader struct {
	cmd   *exec.Cmd
	r     *bufio.Reader
	start float64
	step  float64
	index int
	done  bool
}

func (w *windowReader) Next() (image.Image, float64, error) {
	if w.done {
		return nil, 0, io.EOF
	}
	img, err := jpeg.Decode(w.r)
	if err != nil {
		w.done = true
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, 0, io.EOF
		}
		return nil, 0, fmt.Errorf("decode frame: %w", err)
	}
	ts := w.start + float64(w.index)*w.step
	w.index++
	return img, ts, nil
}

func (w *windowReader) Close() error {
	w.done = true
	if w.cmd.Process != nil {
		_ = w.cmd.Process.Kill()
	}
	_ = w.cmd.Wait()
	return nil
}
