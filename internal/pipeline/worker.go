package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/vidnotes/internal/chunker"
	"github.com/dgallion1/vidnotes/internal/config"
	"github.com/dgallion1/vidnotes/internal/docstore"
	"github.com/dgallion1/vidnotes/internal/frames"
	"github.com/dgallion1/vidnotes/internal/render"
	"github.com/dgallion1/vidnotes/internal/subtitle"
	"github.com/dgallion1/vidnotes/internal/summarize"
)

// Summarizer produces study-note prose for one transcript chunk.
type Summarizer interface {
	Summarize(ctx context.Context, req summarize.Request) (string, error)
}

// Worker processes a single ingestion job.
type Worker struct {
	summarizer Summarizer
	opener     frames.Opener
	store      *docstore.Store
	log        *slog.Logger
	cfg        config.Config
}

func NewWorker(summarizer Summarizer, opener frames.Opener, store *docstore.Store, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		summarizer: summarizer,
		opener:     opener,
		store:      store,
		log:        log,
		cfg:        cfg,
	}
}

// chunkProfile resolves the chunking config for a job from the detected
// language, honoring per-job overrides.
func (w *Worker) chunkProfile(job *Job, lang chunker.Language) chunker.Config {
	cfg := chunker.Config{ChunkSize: w.cfg.ChunkSizeLatin, Overlap: w.cfg.OverlapLatin}
	if lang == chunker.LanguageCJK {
		cfg = chunker.Config{ChunkSize: w.cfg.ChunkSizeCJK, Overlap: w.cfg.OverlapCJK}
	}
	if job.ChunkSize > 0 {
		cfg.ChunkSize = job.ChunkSize
	}
	if job.Overlap > 0 && job.Overlap < cfg.ChunkSize {
		cfg.Overlap = job.Overlap
	}
	return cfg
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: parse and deduplicate captions.
	job.SetStatus(StatusParsing, "parsing")
	raw := job.SubtitleData()
	entries, err := subtitle.ParseRelaxed(bytes.NewReader(raw))
	if err != nil {
		log.Error("subtitle parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	deduped := subtitle.Deduplicate(entries, w.cfg.MinOverlapChars)
	job.SetEntries(len(deduped))
	log.Info("parsed subtitles", "entries", len(entries), "after_dedup", len(deduped))

	if len(deduped) == 0 {
		log.Warn("no usable captions")
		job.SetStatus(StatusEmpty, "parsing")
		return
	}

	// The blank-line parser gives the cleanest text for the consolidated
	// transcript; fall back to the deduplicated entries when it finds
	// nothing (files with no blank separators at all).
	transcript := ""
	if blockEntries, err := subtitle.Parse(bytes.NewReader(raw)); err == nil {
		transcript = subtitle.Consolidate(blockEntries)
	}
	if transcript == "" {
		transcript = subtitle.Consolidate(deduped)
	}
	lang := chunker.DetectLanguage(transcript)
	job.SetLanguage(string(lang))

	// Phase 2: chunk.
	job.SetStatus(StatusChunking, "chunking")
	chunkCfg := w.chunkProfile(job, lang)
	chunks := chunker.Split(deduped, chunkCfg)
	job.SetTotalChunks(len(chunks))
	log.Info("chunked transcript", "chunks", len(chunks), "language", lang,
		"chunk_size", chunkCfg.ChunkSize, "overlap", chunkCfg.Overlap)

	if _, err := w.store.EnsureDoc(job.DocID); err != nil {
		log.Error("create doc dir failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "chunking")
		return
	}
	if err := w.store.WriteTranscript(job.DocID, transcript); err != nil {
		log.Warn("transcript write failed", "error", err)
		job.AddError(fmt.Sprintf("transcript: %s", err))
	}

	// Phase 3: summarize text and extract frames concurrently. The two
	// tasks share no mutable state and join before rendering.
	job.SetStatus(StatusProcessing, "processing")
	summaries := make([]string, len(chunks))
	frameSets := make([][]frames.Record, len(chunks))
	var summaryErrs, frameFatal bool

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		summaryErrs = w.summarizeChunks(ctx, log, job, chunks, lang, summaries)
	}()
	go func() {
		defer wg.Done()
		frameFatal = w.extractFrames(ctx, log, job, chunks, frameSets)
	}()
	wg.Wait()

	// Phase 4: allocate frames to sections and render the document.
	job.SetStatus(StatusRendering, "rendering")
	parts := make([]render.Part, len(chunks))
	totalFrames := 0
	for i := range chunks {
		sections := summarize.SplitSections(summaries[i])
		parts[i] = render.Part{
			Index:    i,
			Sections: sections,
			Frames:   frameSets[i],
			Alloc:    frames.Apportion(len(frameSets[i]), summarize.Weights(sections)),
		}
		totalFrames += len(frameSets[i])
	}

	docDir, err := w.store.DocDir(job.DocID)
	if err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	title := job.Title
	if title == "" {
		title = job.SubtitleName
	}
	notes := render.BuildDocument(title, job.SubtitleName, parts, docDir)
	if err := w.store.WriteNotes(job.DocID, notes); err != nil {
		log.Error("notes write failed", "error", err)
		job.AddError(fmt.Sprintf("notes: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	if err := w.store.WriteMeta(docstore.Meta{
		DocID:      job.DocID,
		Title:      title,
		SourceName: job.SubtitleName,
		VideoPath:  job.VideoPath,
		Language:   string(lang),
		Chunks:     len(chunks),
		Frames:     totalFrames,
		CreatedAt:  job.CreatedAt,
	}); err != nil {
		log.Warn("meta write failed", "error", err)
		job.AddError(fmt.Sprintf("meta: %s", err))
	}

	if summaryErrs || frameFatal {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("job finished", "status", job.Snapshot().Status,
		"chunks", len(chunks), "frames", totalFrames)
}

// summarizeChunks fills summaries in order, retrying transient API errors.
// A chunk that still fails gets a placeholder so rendering can proceed;
// reports whether any chunk failed.
func (w *Worker) summarizeChunks(ctx context.Context, log *slog.Logger, job *Job, chunks []chunker.Chunk, lang chunker.Language, summaries []string) bool {
	hadErrors := false
	for i, chunk := range chunks {
		req := summarize.Request{
			Text:     chunk.Text,
			Part:     i + 1,
			Total:    len(chunks),
			Language: lang,
		}
		var text string
		var lastErr error
		for attempt := range MaxRetries {
			text, lastErr = w.summarizer.Summarize(ctx, req)
			if lastErr == nil || !IsRetryable(lastErr) {
				break
			}
			log.Warn("retryable summarize error", "chunk", i, "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(Backoff(attempt)):
			case <-ctx.Done():
				lastErr = ctx.Err()
			}
			if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
				break
			}
		}
		if lastErr != nil {
			log.Error("summarize failed", "chunk", i, "error", lastErr)
			job.AddError(fmt.Sprintf("chunk %d: %s", i, lastErr))
			summaries[i] = fmt.Sprintf("## Part %d\n\n> Summary unavailable for this part.\n", i+1)
			hadErrors = true
			continue
		}
		summaries[i] = text
		job.IncrChunksSummarized()
	}
	return hadErrors
}

// extractFrames samples and deduplicates keyframes per chunk. Returns true
// when the video could not be used at all; per-window failures only cost
// that window's frames.
func (w *Worker) extractFrames(ctx context.Context, log *slog.Logger, job *Job, chunks []chunker.Chunk, frameSets [][]frames.Record) bool {
	if job.VideoPath == "" {
		return false
	}
	src, err := w.opener.Open(ctx, job.VideoPath)
	if err != nil {
		log.Error("video open failed", "path", job.VideoPath, "error", err)
		job.AddError(fmt.Sprintf("video: %s", err))
		return true
	}

	sampler := frames.NewSampler(frames.Config{
		Interval:           w.cfg.SampleInterval,
		Adaptive:           w.cfg.AdaptiveSampling,
		PrimaryThreshold:   w.cfg.PrimaryThreshold,
		SecondaryThreshold: w.cfg.SecondaryThreshold,
		MinPrimaryGap:      w.cfg.MinPrimaryGap,
		MinSecondaryGap:    w.cfg.MinSecondaryGap,
		GridRows:           w.cfg.GridRows,
		GridCols:           w.cfg.GridCols,
		ScaleWidth:         w.cfg.ScaleWidth,
		ScaleHeight:        w.cfg.ScaleHeight,
		JPEGQuality:        w.cfg.JPEGQuality,
	}, w.log)

	for i, chunk := range chunks {
		dir, err := w.store.ChunkFrameDir(job.DocID, i, chunk.StartTime, chunk.EndTime)
		if err != nil {
			log.Error("frame dir failed", "chunk", i, "error", err)
			job.AddError(fmt.Sprintf("frames chunk %d: %s", i, err))
			continue
		}
		records, err := sampler.SampleWindow(ctx, src, chunk.StartTime, chunk.EndTime, dir)
		if err != nil {
			log.Error("sampling failed", "chunk", i, "error", err)
			job.AddError(fmt.Sprintf("frames chunk %d: %s", i, err))
			continue
		}
		kept := frames.Deduplicate(records, w.cfg.DedupSimilarity, w.cfg.ScaleWidth, w.cfg.ScaleHeight)
		frameSets[i] = kept
		job.AddFrames(len(records), len(kept))
	}
	return false
}
