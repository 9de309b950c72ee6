package api

import (
	"net/http"

	service "github.com/okian/screener/internal/app"
	"github.com/okian/screener/internal/domain/model"
)

// MatchDependencies defines the single-resume scoring operations.
type MatchDependencies interface {
	Resolve(t service.Target) (model.RoleDescriptor, error)
	Match(resumeText, jd string) model.MatchResult
	Skills(text string) service.SkillReport
	Gap(resumeText, jd string) model.SkillGap
	Strength(resumeText, jd string) model.StrengthReport
	Suggestions(resumeText, jd string) []model.Suggestion
}

// MatchHandler handles the resume-versus-role endpoints.
type MatchHandler struct {
	deps MatchDependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

type resumeRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	targetRequest
}

type textRequest struct {
	Text string `json:"text" validate:"required"`
}

type matchResponse struct {
	Role  string            `json:"role"`
	Match model.MatchResult `json:"match"`
}

type gapResponse struct {
	Role string         `json:"role"`
	Gap  model.SkillGap `json:"gap"`
}

type strengthResponse struct {
	Role     string               `json:"role"`
	Strength model.StrengthReport `json:"strength"`
}

type suggestionsResponse struct {
	Role        string             `json:"role"`
	Suggestions []model.Suggestion `json:"suggestions"`
}

// resolve decodes a resume request and resolves its target.
func (h *MatchHandler) resolve(w http.ResponseWriter, r *http.Request, op string) (resumeRequest, model.RoleDescriptor, bool) {
	var req resumeRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, op, err)
		return req, model.RoleDescriptor{}, false
	}
	role, err := h.deps.Resolve(req.target())
	if err != nil {
		writeServiceError(w, op, err)
		return req, model.RoleDescriptor{}, false
	}
	return req, role, true
}

// HandleMatch handles POST /match requests.
func (h *MatchHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	req, role, ok := h.resolve(w, r, "api.match")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, matchResponse{Role: role.Title, Match: h.deps.Match(req.ResumeText, role.Description)})
}

// HandleSkills handles POST /skills requests.
func (h *MatchHandler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decode(w, r, &req); err != nil {
		writeServiceError(w, "api.skills", err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Skills(req.Text))
}

// HandleGap handles POST /skills/gap requests.
func (h *MatchHandler) HandleGap(w http.ResponseWriter, r *http.Request) {
	req, role, ok := h.resolve(w, r, "api.skills_gap")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, gapResponse{Role: role.Title, Gap: h.deps.Gap(req.ResumeText, role.Description)})
}

// HandleStrength handles POST /strength requests.
func (h *MatchHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	req, role, ok := h.resolve(w, r, "api.strength")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, strengthResponse{Role: role.Title, Strength: h.deps.Strength(req.ResumeText, role.Description)})
}

// HandleSuggestions handles POST /suggestions requests.
func (h *MatchHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	req, role, ok := h.resolve(w, r, "api.suggestions")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Role: role.Title, Suggestions: h.deps.Suggestions(req.ResumeText, role.Description)})
}
