// Package service provides the screening service behind the HTTP API, the
// CLI and the background workers.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/screener/internal/adapters/mq/queue"
	workerpool "github.com/okian/screener/internal/adapters/mq/worker"
	repository "github.com/okian/screener/internal/adapters/repository"
	"github.com/okian/screener/internal/catalog"
	"github.com/okian/screener/internal/domain/dedupe"
	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/parser"
	"github.com/okian/screener/internal/domain/ranking"
	"github.com/okian/screener/internal/domain/skills"
	"github.com/okian/screener/internal/domain/types"
	"github.com/okian/screener/pkg/logger"
	"github.com/okian/screener/pkg/metrics"
)

// Target names the job a resume is measured against: a catalog role or a
// free-form job description. Role wins when both are set.
type Target struct {
	Role           string
	JobDescription string
}

// Candidate is one resume submitted for ranking. ID is optional.
type Candidate struct {
	ID   string
	Text string
}

// ScreeningRequest asks for an asynchronous ranking.
type ScreeningRequest struct {
	RequestID  string
	Target     Target
	Candidates []Candidate
}

// Submission acknowledges a screening request.
type Submission struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// Service wires the screening engine to its queue, stores and workers.
type Service struct {
	mu sync.RWMutex

	catalog *catalog.Catalog
	matcher *skills.Matcher
	parser  *parser.Parser
	ranker  *ranking.Ranker

	results    repository.ScreeningStore
	talentPool repository.TalentPool
	deduper    dedupe.Deduper
	queue      eventqueue.Queue
	workers    *workerpool.Pool

	workerCount    int
	rankWorkers    int
	queueSize      int
	dedupeSize     int
	maxCandidates  int
	maxLeaderboard int
	jobTimeout     time.Duration
	now            func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs a Service. The engine is usable at once; asynchronous
// screenings need Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    runtime.NumCPU(),
		rankWorkers:    runtime.NumCPU(),
		queueSize:      1024,
		dedupeSize:     50_000,
		maxCandidates:  500,
		maxLeaderboard: 100,
		jobTimeout:     30 * time.Second,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.catalog == nil {
		s.catalog = catalog.MustDefault()
	}
	s.matcher = skills.NewMatcher(s.catalog.Categories())
	s.parser = parser.New(parser.WithClock(s.now))
	s.ranker = ranking.New(s.matcher,
		ranking.WithWorkers(s.rankWorkers),
		ranking.WithObserver(func(o ranking.RankedObservation) {
			metrics.RecordMatchScored(float64(o.Duration.Microseconds()) / 1000)
		}),
	)
	s.results = repository.NewMemoryResults(repository.WithClock(s.now))
	s.talentPool = repository.NewTreapPool(repository.WithMaxLimit(s.maxLeaderboard))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Start creates the queue and launches the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting screening service...")

	q := eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.queue = q
	s.workers = workerpool.NewPool(s.workerCount, q, s.ranker, s.results, s.talentPool,
		workerpool.WithJobTimeout(s.jobTimeout),
	)
	s.workers.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "screening service started",
		logger.Int("workers", s.workerCount),
		logger.Int("rank_workers", s.rankWorkers),
		logger.Int("queue_size", s.queueSize),
		logger.Int("dedupe_size", s.dedupeSize),
		logger.Int("roles", len(s.catalog.Roles())),
	)
	return nil
}

// Stop closes the queue and waits for queued screenings to finish or ctx
// to expire.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping screening service...")

	err := s.workers.Shutdown(ctx)
	s.started = false
	if err != nil {
		return fmt.Errorf("stop service: %w", err)
	}
	s.logger.Info(ctx, "screening service stopped")
	return nil
}

// Catalog returns the role and skill tables in use.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Matcher returns the skill matcher built from the catalog.
func (s *Service) Matcher() *skills.Matcher { return s.matcher }

// Roles returns the role table.
func (s *Service) Roles() []model.RoleDescriptor { return s.catalog.Roles() }

// Resolve turns a target into a role descriptor. A free-form description
// becomes an uncategorised "Custom Role".
func (s *Service) Resolve(t Target) (model.RoleDescriptor, error) {
	if t.Role != "" {
		r, err := s.catalog.Role(t.Role)
		if err != nil {
			return model.RoleDescriptor{}, fmt.Errorf("resolve target: %w", err)
		}
		return r, nil
	}
	if t.JobDescription == "" {
		return model.RoleDescriptor{}, ErrMissingJobDescription
	}
	return model.RoleDescriptor{
		Title:       customRole,
		Category:    "Other",
		Description: t.JobDescription,
	}, nil
}

// Parse extracts a ResumeRecord from text and annotates its skills.
func (s *Service) Parse(text string) model.ResumeRecord {
	r := s.parser.Parse(text)
	r.Skills = s.matcher.Extract(text)
	return r
}

// Candidates parses submitted resumes, keeping caller-supplied IDs.
func (s *Service) Candidates(in []Candidate) ([]model.ResumeRecord, error) {
	if len(in) == 0 {
		return nil, ErrNoCandidates
	}
	if len(in) > s.maxCandidates {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCandidates, len(in), s.maxCandidates)
	}
	out := make([]model.ResumeRecord, len(in))
	for i, c := range in {
		out[i] = s.Parse(c.Text)
		out[i].ID = c.ID
	}
	return out, nil
}

// Rank scores candidates against t synchronously.
func (s *Service) Rank(ctx context.Context, t Target, in []Candidate) (RankReport, error) {
	role, err := s.Resolve(t)
	if err != nil {
		return RankReport{}, err
	}
	records, err := s.Candidates(in)
	if err != nil {
		return RankReport{}, err
	}
	ranked, err := s.ranker.Rank(ctx, records, role.Description)
	if err != nil {
		return RankReport{}, fmt.Errorf("rank candidates: %w", err)
	}
	metrics.RecordCandidatesRanked(len(ranked))
	return RankReport{Role: role, Ranking: ranked, Summary: ranking.Summarize(ranked)}, nil
}

// Submit queues a screening. A repeated RequestID returns the screening it
// created first.
func (s *Service) Submit(ctx context.Context, req ScreeningRequest) (Submission, error) {
	s.mu.RLock()
	started, q := s.started, s.queue
	s.mu.RUnlock()
	if !started {
		return Submission{}, ErrNotStarted
	}

	role, err := s.Resolve(req.Target)
	if err != nil {
		return Submission{}, err
	}
	records, err := s.Candidates(req.Candidates)
	if err != nil {
		return Submission{}, err
	}

	id := uuid.NewString()
	if req.RequestID != "" {
		if existing, seen := s.deduper.Claim(ctx, req.RequestID, id); seen {
			metrics.RecordScreeningDuplicate()
			s.logger.Debug(ctx, "duplicate screening request",
				logger.String("request_id", req.RequestID),
				logger.String("screening_id", existing),
			)
			return Submission{ID: existing, Duplicate: true}, nil
		}
	}

	job := model.ScreeningJob{
		ID:             id,
		RequestID:      req.RequestID,
		JobDescription: role.Description,
		Candidates:     records,
		SubmittedAt:    s.now(),
	}
	if role.Title != customRole {
		job.Role = role.Title
	}

	if _, err := s.results.Create(ctx, job); err != nil {
		s.release(ctx, req.RequestID)
		return Submission{}, fmt.Errorf("submit screening: %w", err)
	}
	if !q.Enqueue(ctx, job) {
		s.results.Delete(ctx, id)
		s.release(ctx, req.RequestID)
		return Submission{}, ErrQueueFull
	}

	metrics.RecordScreeningSubmitted()
	s.logger.Debug(ctx, "screening queued",
		logger.String("screening_id", id),
		logger.String("role", job.Role),
		logger.Int("candidates", len(records)),
	)
	return Submission{ID: id}, nil
}

func (s *Service) release(ctx context.Context, requestID string) {
	if requestID != "" {
		s.deduper.Release(ctx, requestID)
	}
}

// Screening returns the state of a submitted screening.
func (s *Service) Screening(ctx context.Context, id string) (model.ScreeningResult, error) {
	return s.results.Get(ctx, id)
}

// Leaderboard returns the best candidates seen for role.
func (s *Service) Leaderboard(ctx context.Context, role string, limit int) ([]types.Entry, error) {
	if _, err := s.catalog.Role(role); err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return s.talentPool.TopN(ctx, role, limit)
}

// CandidateRank returns the place of one candidate on the leaderboard of role.
func (s *Service) CandidateRank(ctx context.Context, role, candidateID string) (types.Entry, error) {
	return s.talentPool.Rank(ctx, role, candidateID)
}

// MaxLeaderboardLimit returns the largest leaderboard page served.
func (s *Service) MaxLeaderboardLimit() int { return s.maxLeaderboard }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"rankWorkers":   s.rankWorkers,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.deduper.Size(),
		"maxCandidates": s.maxCandidates,
		"roles":         len(s.catalog.Roles()),
		"skills":        len(s.matcher.Vocabulary()),
	}

	counts := s.results.Count(ctx)
	stats["screenings"] = map[string]int{
		string(model.ScreeningPending): counts[model.ScreeningPending],
		string(model.ScreeningDone):    counts[model.ScreeningDone],
		string(model.ScreeningFailed):  counts[model.ScreeningFailed],
	}

	pool := map[string]int{}
	for _, role := range s.talentPool.Roles(ctx) {
		pool[role] = s.talentPool.Count(ctx, role)
	}
	stats["talentPool"] = pool

	if s.started {
		queueLen := s.queue.Len()
		stats["queueLength"] = queueLen
		metrics.UpdateQueueSize(queueLen)
	}
	return stats
}

// IsNotFound reports whether err means a missing screening, role or
// candidate.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, catalog.ErrUnknownRole)
}
