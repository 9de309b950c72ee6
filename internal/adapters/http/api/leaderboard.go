package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

const defaultLeaderboardLimit = 10

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, role string, limit int) ([]Entry, error)
	CandidateRank(ctx context.Context, role, candidateID string) (Entry, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetLeaderboard handles GET /leaderboard?role=R&limit=N requests.
// With candidate_id it returns the position of that candidate instead.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	q := r.URL.Query()

	role := strings.TrimSpace(q.Get("role"))
	if role == "" {
		writeError(w, http.StatusBadRequest, "bad_request", wrap(op, errors.New("role is required")))
		return
	}

	if id := strings.TrimSpace(q.Get("candidate_id")); id != "" {
		entry, err := h.deps.CandidateRank(r.Context(), role, id)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
		return
	}

	n := min(defaultLeaderboardLimit, h.maxLimit)
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", wrap(op, ErrBadRequest))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", wrap(op, ErrBadRequest))
		return
	}

	entries, err := h.deps.Leaderboard(r.Context(), role, n)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
