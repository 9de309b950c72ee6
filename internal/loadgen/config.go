// Package loadgen drives a running screener with synthetic screenings and
// checks that what comes back is consistent.
package loadgen

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Screenings int           // Number of screenings to submit
	Candidates int           // Candidates per screening
	Role       string        // Catalog role every screening targets
	TopN       int           // Leaderboard entries to fetch
	Workers    int           // Concurrent submitters and pollers
	Timeout    time.Duration // HTTP request timeout
	Wait       time.Duration // Longest wait for one screening to finish
	Seed       uint64        // Resume generator seed
	OutputFile string        // Optional JSON dump of submitted requests
	Verbose    bool
}

// Candidate is one synthetic resume.
type Candidate struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Request is the POST /screenings body.
type Request struct {
	RequestID  string      `json:"request_id"`
	Role       string      `json:"role"`
	Candidates []Candidate `json:"candidates"`
}

// Submission is the POST /screenings reply.
type Submission struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// Ranked is the subset of a ranked candidate the checks need.
type Ranked struct {
	Rank  int     `json:"rank"`
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Screening is the GET /screenings/{id} reply.
type Screening struct {
	ID      string   `json:"id"`
	Status  string   `json:"status"`
	Error   string   `json:"error"`
	Ranking []Ranked `json:"ranking"`
}

// Entry is one leaderboard row.
type Entry struct {
	Rank        int     `json:"rank"`
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
}

// Stats holds run statistics.
type Stats struct {
	Submitted          int
	Accepted           int
	Duplicate          int
	Failed             int
	Completed          int
	LeaderboardEntries int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
