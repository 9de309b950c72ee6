package loadgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/screener/pkg/logger"
)

const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run submits cfg.Screenings screenings, waits for each to finish, and
// verifies the rankings and the role leaderboard.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("loadgen")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting screener load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("role", cfg.Role),
		logger.Int("screenings", cfg.Screenings),
		logger.Int("candidates", cfg.Candidates),
		logger.Int("workers", cfg.Workers),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	requests := NewGenerator(cfg.Seed).Requests(cfg.Role, cfg.Screenings, cfg.Candidates)
	if cfg.OutputFile != "" {
		if err := saveRequests(cfg.OutputFile, requests); err != nil {
			log.Warn(ctx, "failed to save requests", logger.Error(err))
		}
	}

	best, err := process(ctx, cfg, client, requests, stats)
	if err != nil {
		return stats, err
	}

	entries, err := client.Leaderboard(ctx, cfg.Role, cfg.TopN)
	if err != nil {
		return stats, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	stats.LeaderboardEntries = len(entries)
	if err := VerifyLeaderboard(entries, best); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logStats(ctx, log, stats)
	return stats, nil
}

// process submits and awaits every request with cfg.Workers goroutines and
// returns the best score seen.
func process(ctx context.Context, cfg *Config, client *Client, requests []Request, stats *Stats) (float64, error) {
	log := logger.Get().Named("loadgen")

	var (
		accepted, duplicate, failed, completed atomic.Int64

		mu   sync.Mutex
		best float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for _, req := range requests {
		g.Go(func() error {
			sub, err := client.Submit(gctx, req)
			if err != nil {
				failed.Add(1)
				if cfg.Verbose {
					log.Warn(gctx, "submit failed", logger.String("request_id", req.RequestID), logger.Error(err))
				}
				return nil
			}
			if sub.Duplicate {
				duplicate.Add(1)
			} else {
				accepted.Add(1)
			}

			s, err := client.Await(gctx, sub.ID, cfg.Wait)
			if err != nil {
				return err
			}
			if err := VerifyRanking(req, s); err != nil {
				return err
			}
			completed.Add(1)

			if len(s.Ranking) > 0 {
				mu.Lock()
				best = max(best, s.Ranking[0].Score)
				mu.Unlock()
			}
			return nil
		})
	}
	err := g.Wait()

	stats.Submitted = len(requests)
	stats.Accepted = int(accepted.Load())
	stats.Duplicate = int(duplicate.Load())
	stats.Failed = int(failed.Load())
	stats.Completed = int(completed.Load())

	if err != nil {
		return 0, fmt.Errorf("screening run failed: %w", err)
	}
	if stats.Completed == 0 {
		return 0, errors.New("no screening completed")
	}
	return best, nil
}

func saveRequests(filename string, requests []Request) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	raw, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal requests: %w", err)
	}
	if err := os.WriteFile(filename, raw, filePermission); err != nil {
		return fmt.Errorf("failed to write requests: %w", err)
	}
	return nil
}

func logStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed),
		logger.Int("completed", stats.Completed),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("screeningsPerSecond", perSecond),
	)
}
