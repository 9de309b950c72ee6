// Package config defines service configuration and its layered loading.
package config

import (
	"fmt"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RankWorkers bounds the goroutines scoring one batch of candidates.
	RankWorkers int `koanf:"rank_workers"`

	// MaxCandidates caps the candidates accepted by one rank or screening request.
	MaxCandidates int `koanf:"max_candidates"`

	// QueueSize bounds the in-memory screening queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of screening workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many request IDs are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// RateLimit is the number of requests per minute allowed per client IP.
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// RolesFile and SkillsFile replace the embedded catalog when both are set.
	RolesFile  string `koanf:"roles_file"`
	SkillsFile string `koanf:"skills_file"`

	// JobTimeout bounds the ranking of one queued screening.
	JobTimeout time.Duration `koanf:"job_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		RankWorkers:         runtime.NumCPU(),
		MaxCandidates:       500,
		QueueSize:           1024,
		WorkerCount:         runtime.NumCPU(),
		DedupeSize:          50_000,
		RateLimit:           600,
		MaxLeaderboardLimit: 100,
		JobTimeout:          30 * time.Second,
		ShutdownTimeout:     10 * time.Second,
	}
}

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !oneOf(c.LogLevel, "debug", "info", "warn", "error"):
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	case !oneOf(c.LogFormat, "text", "json"):
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	case c.MaxCandidates < 1:
		return fmt.Errorf("%w: max_candidates must be positive", ErrInvalidConfig)
	case c.MaxLeaderboardLimit < 1:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	case c.RateLimit < 0:
		return fmt.Errorf("%w: rate_limit must not be negative", ErrInvalidConfig)
	case c.JobTimeout <= 0:
		return fmt.Errorf("%w: job_timeout must be positive", ErrInvalidConfig)
	case (c.RolesFile == "") != (c.SkillsFile == ""):
		return fmt.Errorf("%w: roles_file and skills_file must be set together", ErrInvalidConfig)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
