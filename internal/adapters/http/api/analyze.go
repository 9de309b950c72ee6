package api

import (
	"context"
	"net/http"

	service "github.com/okian/screener/internal/app"
)

// AnalyzeDependencies runs the full single-resume report.
type AnalyzeDependencies interface {
	Analyze(ctx context.Context, resumeText string, t service.Target) (service.Analysis, error)
}

// AnalyzeHandler handles analysis requests.
type AnalyzeHandler struct {
	deps AnalyzeDependencies
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps AnalyzeDependencies) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps}
}

// HandleAnalyze handles POST /analyze requests.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	var req resumeRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, op, err)
		return
	}
	a, err := h.deps.Analyze(r.Context(), req.ResumeText, req.target())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
