// Command loadgen submits synthetic screenings to a running screener and
// verifies the rankings it returns.
package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/okian/screener/internal/loadgen"
	"github.com/okian/screener/pkg/logger"
)

// Default configuration constants.
const (
	defaultScreenings  = 200
	defaultCandidates  = 25
	defaultTopN        = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultWait        = 2 * time.Minute
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	cfg := &loadgen.Config{}
	pflag.StringVarP(&cfg.BaseURL, "url", "u", "http://localhost:9080", "Base URL of the service")
	pflag.IntVarP(&cfg.Screenings, "screenings", "s", defaultScreenings, "Number of screenings to submit")
	pflag.IntVarP(&cfg.Candidates, "candidates", "c", defaultCandidates, "Candidates per screening")
	pflag.StringVarP(&cfg.Role, "role", "r", "Data Scientist", "Catalog role to screen for")
	pflag.IntVar(&cfg.TopN, "top", defaultTopN, "Leaderboard entries to fetch")
	pflag.IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU()*defaultWorkers, "Concurrent workers")
	pflag.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	pflag.DurationVar(&cfg.Wait, "wait", defaultWait, "Longest wait for one screening")
	pflag.Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "Resume generator seed")
	pflag.StringVarP(&cfg.OutputFile, "output", "o", "", "Write submitted requests to this JSON file")
	pflag.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log every failure")
	format := pflag.String("log-format", logger.FormatText, "text or json")
	pflag.Parse()

	if err := logger.Init(logger.WithFormat(*format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTestTimeout)
	defer cancel()

	if _, err := loadgen.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "load run failed", logger.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
}
