// Package types contains common types used across the application
package types

// Entry represents a talent pool leaderboard entry
type Entry struct {
	Rank        int     `json:"rank"`
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
}
