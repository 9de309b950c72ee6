package api

import (
	"context"
	"net/http"

	"github.com/okian/screener/internal/adapters/export"
	service "github.com/okian/screener/internal/app"
)

// RankDependencies ranks a candidate set synchronously.
type RankDependencies interface {
	Rank(ctx context.Context, t service.Target, in []service.Candidate) (service.RankReport, error)
}

// RankHandler handles synchronous ranking requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

type rankRequest struct {
	targetRequest
	Candidates []candidateRequest `json:"candidates" validate:"required,min=1,dive"`
	Top        int                `json:"top" validate:"gte=0"`
}

// HandleRank handles POST /rank requests. ?format=csv returns the ranking
// as CSV.
func (h *RankHandler) HandleRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.rank"
	var req rankRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, op, err)
		return
	}
	report, err := h.deps.Rank(r.Context(), req.target(), candidates(req.Candidates))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if req.Top > 0 && len(report.Ranking) > req.Top {
		report.Ranking = report.Ranking[:req.Top]
	}
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", export.ContentType)
		w.WriteHeader(http.StatusOK)
		_ = export.WriteCSV(w, report.Ranking)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
