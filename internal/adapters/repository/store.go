// Package repository holds screening results and the per-role talent pool.
package repository

import (
	"context"

	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/types"
)

// TalentPool keeps the best score each candidate has reached per role.
type TalentPool interface {
	// Offer records c under role if it beats the candidate's previous best.
	// Returns true when the pool changed.
	Offer(ctx context.Context, role string, c model.RankedCandidate) (bool, error)

	// Rank returns the position and best score of a candidate within role.
	// Returns ErrNotFound if the candidate was never offered for the role.
	Rank(ctx context.Context, role, candidateID string) (types.Entry, error)

	// TopN returns the best n entries of role ordered by score desc.
	TopN(ctx context.Context, role string, n int) ([]types.Entry, error)

	// Count returns the number of candidates tracked for role.
	Count(ctx context.Context, role string) int

	// Roles lists the roles that have at least one candidate.
	Roles(ctx context.Context) []string
}

// ScreeningStore tracks the lifecycle of asynchronous screenings.
type ScreeningStore interface {
	// Create registers a pending screening.
	Create(ctx context.Context, job model.ScreeningJob) (model.ScreeningResult, error)
	// Complete stores the ranking of a finished screening.
	Complete(ctx context.Context, id string, ranked []model.RankedCandidate, summary model.Summary) error
	// Fail marks a screening as failed with reason.
	Fail(ctx context.Context, id string, reason string) error
	// Delete forgets a screening.
	Delete(ctx context.Context, id string)
	// Get returns the current state of a screening.
	Get(ctx context.Context, id string) (model.ScreeningResult, error)
	// Count returns the number of screenings per status.
	Count(ctx context.Context) map[model.ScreeningStatus]int
}
