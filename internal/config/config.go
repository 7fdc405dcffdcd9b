package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Claude summarization
	AnthropicAPIKey string
	AnthropicModel  string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Output
	OutputDir string

	// Video decoding
	FFmpegPath  string
	FFprobePath string

	// Chunking per language class
	ChunkSizeCJK    int
	OverlapCJK      int
	ChunkSizeLatin  int
	OverlapLatin    int
	MinOverlapChars int

	// Frame sampling
	SampleInterval     float64
	AdaptiveSampling   bool
	PrimaryThreshold   float64
	SecondaryThreshold float64
	MinPrimaryGap      float64
	MinSecondaryGap    float64
	GridRows           int
	GridCols           int
	ScaleWidth         int
	ScaleHeight        int
	DedupSimilarity    float64
	JPEGQuality        int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("VIDNOTES_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		OutputDir: envOr("OUTPUT_DIR", "./data/docs"),

		FFmpegPath:  envOr("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: envOr("FFPROBE_PATH", "ffprobe"),

		ChunkSizeCJK:    envInt("CHUNK_SIZE_CJK", 2000),
		OverlapCJK:      envInt("CHUNK_OVERLAP_CJK", 150),
		ChunkSizeLatin:  envInt("CHUNK_SIZE_LATIN", 1700),
		OverlapLatin:    envInt("CHUNK_OVERLAP_LATIN", 120),
		MinOverlapChars: envInt("MIN_OVERLAP_CHARS", 4),

		SampleInterval:     envFloat("SAMPLE_INTERVAL", 2.0),
		AdaptiveSampling:   envBool("ADAPTIVE_SAMPLING", true),
		PrimaryThreshold:   envFloat("PRIMARY_THRESHOLD", 0.30),
		SecondaryThreshold: envFloat("SECONDARY_THRESHOLD", 0.10),
		MinPrimaryGap:      envFloat("MIN_PRIMARY_GAP", 2),
		MinSecondaryGap:    envFloat("MIN_SECONDARY_GAP", 10),
		GridRows:           envInt("GRID_ROWS", 4),
		GridCols:           envInt("GRID_COLS", 4),
		ScaleWidth:         envInt("SCALE_WIDTH", 128),
		ScaleHeight:        envInt("SCALE_HEIGHT", 72),
		DedupSimilarity:    envFloat("DEDUP_SIMILARITY", 0.97),
		JPEGQuality:        envInt("JPEG_QUALITY", 90),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.ChunkSizeCJK <= 0 {
		cfg.ChunkSizeCJK = 2000
	}
	if cfg.ChunkSizeLatin <= 0 {
		cfg.ChunkSizeLatin = 1700
	}
	if cfg.OverlapCJK < 0 {
		cfg.OverlapCJK = 0
	}
	if cfg.OverlapLatin < 0 {
		cfg.OverlapLatin = 0
	}
	if cfg.MinOverlapChars <= 0 {
		cfg.MinOverlapChars = 4
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 2.0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("VIDNOTES_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
