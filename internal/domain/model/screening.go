package model

import "time"

// ScreeningJob is a batch of candidates queued for ranking against one job
// description. Role is empty when the description was supplied directly.
type ScreeningJob struct {
	ID             string
	RequestID      string
	Role           string
	JobDescription string
	Candidates     []ResumeRecord
	SubmittedAt    time.Time
}

// ScreeningStatus is the lifecycle state of a screening.
type ScreeningStatus string

const (
	ScreeningPending ScreeningStatus = "pending"
	ScreeningDone    ScreeningStatus = "done"
	ScreeningFailed  ScreeningStatus = "failed"
)

// ScreeningResult is the stored outcome of a screening.
type ScreeningResult struct {
	ID          string            `json:"id"`
	Role        string            `json:"role,omitempty"`
	Status      ScreeningStatus   `json:"status"`
	Error       string            `json:"error,omitempty"`
	Ranking     []RankedCandidate `json:"ranking,omitempty"`
	Summary     *Summary          `json:"summary,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}
