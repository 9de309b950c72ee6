package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/pkg/metrics"
)

// MemoryResults is an in-memory ScreeningStore.
type MemoryResults struct {
	mu   sync.RWMutex
	byID map[string]model.ScreeningResult
	now  func() time.Time
}

// NewMemoryResults constructs an empty screening store.
func NewMemoryResults(opts ...ResultsOption) *MemoryResults {
	s := &MemoryResults{
		byID: make(map[string]model.ScreeningResult),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers job as pending.
func (s *MemoryResults) Create(_ context.Context, job model.ScreeningJob) (model.ScreeningResult, error) { //nolint:gocritic // jobs travel by value
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[job.ID]; ok {
		return model.ScreeningResult{}, fmt.Errorf("screening %s: %w", job.ID, ErrAlreadyExists)
	}
	submitted := job.SubmittedAt
	if submitted.IsZero() {
		submitted = s.now()
	}
	res := model.ScreeningResult{
		ID:          job.ID,
		Role:        job.Role,
		Status:      model.ScreeningPending,
		SubmittedAt: submitted,
	}
	s.byID[job.ID] = res
	return res, nil
}

// Complete marks a screening done and stores its ranking.
func (s *MemoryResults) Complete(_ context.Context, id string, ranked []model.RankedCandidate, summary model.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return fmt.Errorf("screening %s: %w", id, ErrNotFound)
	}
	now := s.now()
	res.Status = model.ScreeningDone
	res.Error = ""
	res.Ranking = append([]model.RankedCandidate(nil), ranked...)
	res.Summary = &summary
	res.CompletedAt = &now
	s.byID[id] = res
	return nil
}

// Fail marks a screening failed.
func (s *MemoryResults) Fail(_ context.Context, id string, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return fmt.Errorf("screening %s: %w", id, ErrNotFound)
	}
	now := s.now()
	res.Status = model.ScreeningFailed
	res.Error = reason
	res.CompletedAt = &now
	s.byID[id] = res
	return nil
}

// Delete forgets a screening. Used when a created screening could not be
// queued.
func (s *MemoryResults) Delete(_ context.Context, id string) {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
}

// Get returns a copy of the stored screening.
func (s *MemoryResults) Get(_ context.Context, id string) (model.ScreeningResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.byID[id]
	if !ok {
		return model.ScreeningResult{}, fmt.Errorf("screening %s: %w", id, ErrNotFound)
	}
	res.Ranking = append([]model.RankedCandidate(nil), res.Ranking...)
	return res, nil
}

// Count returns the number of screenings per status.
func (s *MemoryResults) Count(_ context.Context) map[model.ScreeningStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[model.ScreeningStatus]int{
		model.ScreeningPending: 0,
		model.ScreeningDone:    0,
		model.ScreeningFailed:  0,
	}
	for _, res := range s.byID {
		out[res.Status]++
	}
	return out
}
