// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	service "github.com/okian/screener/internal/app"
	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/types"
)

const maxBodyBytes = 8 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	RolesDependencies
	MatchDependencies
	AnalyzeDependencies
	RankDependencies
	ScreeningDependencies
	LeaderboardDependencies
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	rolesHandler       *RolesHandler
	matchHandler       *MatchHandler
	analyzeHandler     *AnalyzeHandler
	rankHandler        *RankHandler
	screeningsHandler  *ScreeningsHandler
	leaderboardHandler *LeaderboardHandler

	rateLimit int
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithRateLimit limits the POST endpoints to n requests per minute per
// client IP. Zero disables the limit.
func WithRateLimit(n int) ServerOption {
	return func(s *Server) {
		if n >= 0 {
			s.rateLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		rolesHandler:       NewRolesHandler(deps),
		matchHandler:       NewMatchHandler(deps),
		analyzeHandler:     NewAnalyzeHandler(deps),
		rankHandler:        NewRankHandler(deps),
		screeningsHandler:  NewScreeningsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		if s.rateLimit == 0 {
			return h
		}
		return httprate.LimitByIP(s.rateLimit, time.Minute)(h).ServeHTTP
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /roles", MetricsMiddleware(s.rolesHandler.HandleGetRoles, "roles"))

	mux.HandleFunc("POST /match", MetricsMiddleware(limited(s.matchHandler.HandleMatch), "match"))
	mux.HandleFunc("POST /skills", MetricsMiddleware(limited(s.matchHandler.HandleSkills), "skills"))
	mux.HandleFunc("POST /skills/gap", MetricsMiddleware(limited(s.matchHandler.HandleGap), "skills_gap"))
	mux.HandleFunc("POST /strength", MetricsMiddleware(limited(s.matchHandler.HandleStrength), "strength"))
	mux.HandleFunc("POST /suggestions", MetricsMiddleware(limited(s.matchHandler.HandleSuggestions), "suggestions"))
	mux.HandleFunc("POST /analyze", MetricsMiddleware(limited(s.analyzeHandler.HandleAnalyze), "analyze"))
	mux.HandleFunc("POST /rank", MetricsMiddleware(limited(s.rankHandler.HandleRank), "rank"))

	mux.HandleFunc("POST /screenings", MetricsMiddleware(limited(s.screeningsHandler.HandleSubmit), "screenings"))
	mux.HandleFunc("GET /screenings/{id}", MetricsMiddleware(s.screeningsHandler.HandleGet, "screening"))
	mux.HandleFunc("GET /leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

// targetRequest names the job to compare against: a catalog role or a
// free-form description.
type targetRequest struct {
	Role           string `json:"role" validate:"omitempty,max=128"`
	JobDescription string `json:"job_description" validate:"omitempty,max=100000"`
}

func (t targetRequest) target() service.Target {
	return service.Target{Role: strings.TrimSpace(t.Role), JobDescription: t.JobDescription}
}

type candidateRequest struct {
	ID   string `json:"id" validate:"omitempty,max=256"`
	Text string `json:"text" validate:"required"`
}

func candidates(in []candidateRequest) []service.Candidate {
	out := make([]service.Candidate, len(in))
	for i, c := range in {
		out[i] = service.Candidate{ID: strings.TrimSpace(c.ID), Text: c.Text}
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

// getValidator reports field names by their JSON tag.
func getValidator() *validator.Validate {
	vldOnce.Do(func() {
		vld = validator.New(validator.WithRequiredStructEnabled())
		vld.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return vld
}

// decode reads a JSON body into v and validates it.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err := getValidator().Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]string, len(ve))
			for i, fe := range ve {
				fields[i] = fe.Field() + " " + fe.Tag()
			}
			return fmt.Errorf("%w: invalid %s", ErrBadRequest, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// Compile-time check that the service satisfies the handler contracts.
var _ Dependencies = (*service.Service)(nil)

// roleList is the GET /roles payload.
type roleList struct {
	Roles []model.RoleDescriptor `json:"roles"`
}
