package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of an ingestion job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusChunking   JobStatus = "chunking"
	StatusProcessing JobStatus = "processing"
	StatusRendering  JobStatus = "rendering"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
	StatusEmpty      JobStatus = "empty"
)

// Job tracks the state of a single video ingestion.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status       JobStatus `json:"status"`
	Phase        string    `json:"phase"`
	SubtitleName string    `json:"subtitle_name"`
	VideoPath    string    `json:"video_path,omitempty"`
	Title        string    `json:"title"`
	Language     string    `json:"language,omitempty"`

	// Optional per-job overrides of the language-profile chunking defaults.
	ChunkSize int `json:"chunk_size,omitempty"`
	Overlap   int `json:"overlap,omitempty"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	subtitleData []byte
	errors       []string
}

// Progress tracks processing progress.
type Progress struct {
	Entries          int      `json:"entries"`
	TotalChunks      int      `json:"total_chunks"`
	ChunksSummarized int      `json:"chunks_summarized"`
	FramesExtracted  int      `json:"frames_extracted"`
	FramesKept       int      `json:"frames_kept"`
	Errors           []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetLanguage records the detected dominant language.
func (j *Job) SetLanguage(lang string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Language = lang
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetEntries records the deduplicated entry count.
func (j *Job) SetEntries(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Entries = n
	j.UpdatedAt = time.Now()
}

// SetTotalChunks records total chunk count.
func (j *Job) SetTotalChunks(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalChunks = n
	j.UpdatedAt = time.Now()
}

// IncrChunksSummarized atomically increments the summarized-chunk count.
func (j *Job) IncrChunksSummarized() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChunksSummarized++
	j.UpdatedAt = time.Now()
}

// AddFrames records sampled and post-dedup frame counts.
func (j *Job) AddFrames(extracted, kept int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FramesExtracted += extracted
	j.Progress.FramesKept += kept
	j.UpdatedAt = time.Now()
}

// SetSubtitleData sets the raw subtitle bytes for processing.
func (j *Job) SetSubtitleData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.subtitleData = data
}

// SubtitleData returns the raw subtitle bytes.
func (j *Job) SubtitleData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.subtitleData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID           string    `json:"job_id"`
	DocID        string    `json:"doc_id"`
	Status       JobStatus `json:"status"`
	Phase        string    `json:"phase"`
	SubtitleName string    `json:"subtitle_name"`
	VideoPath    string    `json:"video_path,omitempty"`
	Title        string    `json:"title"`
	Language     string    `json:"language,omitempty"`
	Progress     Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:           j.ID,
		DocID:        j.DocID,
		Status:       j.Status,
		Phase:        j.Phase,
		SubtitleName: j.SubtitleName,
		VideoPath:    j.VideoPath,
		Title:        j.Title,
		Language:     j.Language,
		Progress: Progress{
			Entries:          j.Progress.Entries,
			TotalChunks:      j.Progress.TotalChunks,
			ChunksSummarized: j.Progress.ChunksSummarized,
			FramesExtracted:  j.Progress.FramesExtracted,
			FramesKept:       j.Progress.FramesKept,
			Errors:           errs,
		},
	}
}
