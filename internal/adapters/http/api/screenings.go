package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/screener/internal/adapters/export"
	service "github.com/okian/screener/internal/app"
	"github.com/okian/screener/internal/domain/model"
)

// ScreeningDependencies defines the asynchronous screening operations.
type ScreeningDependencies interface {
	Submit(ctx context.Context, req service.ScreeningRequest) (service.Submission, error)
	Screening(ctx context.Context, id string) (model.ScreeningResult, error)
}

// ScreeningsHandler handles screening submission and lookup.
type ScreeningsHandler struct {
	deps ScreeningDependencies
}

// NewScreeningsHandler creates a new screenings handler.
func NewScreeningsHandler(deps ScreeningDependencies) *ScreeningsHandler {
	return &ScreeningsHandler{deps: deps}
}

type screeningRequest struct {
	RequestID string `json:"request_id" validate:"omitempty,max=256"`
	targetRequest
	Candidates []candidateRequest `json:"candidates" validate:"required,min=1,dive"`
}

var errNotDone = errors.New("screening not done")

// HandleSubmit handles POST /screenings requests. A new screening answers
// 202 Accepted, a repeated request_id 200 with the original ID.
func (h *ScreeningsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_screening"
	var req screeningRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, op, err)
		return
	}
	sub, err := h.deps.Submit(r.Context(), service.ScreeningRequest{
		RequestID:  req.RequestID,
		Target:     req.target(),
		Candidates: candidates(req.Candidates),
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	status := http.StatusAccepted
	if sub.Duplicate {
		status = http.StatusOK
	}
	w.Header().Set("Location", "/screenings/"+sub.ID)
	writeJSON(w, status, sub)
}

// HandleGet handles GET /screenings/{id} requests. ?format=csv returns the
// ranking of a finished screening as CSV.
func (h *ScreeningsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_screening"
	res, err := h.deps.Screening(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if r.URL.Query().Get("format") != "csv" {
		writeJSON(w, http.StatusOK, res)
		return
	}
	if res.Status != model.ScreeningDone {
		writeError(w, http.StatusConflict, "not_done", wrap(op, fmt.Errorf("%w: %s", errNotDone, res.Status)))
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "screening-"+res.ID+".csv"))
	w.WriteHeader(http.StatusOK)
	_ = export.WriteCSV(w, res.Ranking)
}
