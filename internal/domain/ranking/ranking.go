// Package ranking orders candidates by how well they match a role.
package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/similarity"
	"github.com/okian/screener/internal/domain/skills"
)

// strongMatch is the score from which a candidate counts as a strong match.
const strongMatch = 70.0

// RankedObservation reports the cost of scoring one candidate.
type RankedObservation struct {
	Score    float64
	Duration time.Duration
}

// Ranker scores candidates concurrently. Output is identical to
// RankResumes for the same input.
type Ranker struct {
	matcher *skills.Matcher
	workers int
	observe func(RankedObservation)
}

// New creates a Ranker that uses m for skill extraction.
func New(m *skills.Matcher, opts ...Option) *Ranker {
	r := &Ranker{
		matcher: m,
		workers: runtime.NumCPU(),
		observe: func(RankedObservation) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every candidate against jd and returns them sorted by score,
// highest first. Equal scores keep their input order. The only error is
// cancellation of ctx.
func (r *Ranker) Rank(ctx context.Context, candidates []model.ResumeRecord, jd string) ([]model.RankedCandidate, error) {
	jdSkills := r.matcher.Extract(jd)
	out := make([]model.RankedCandidate, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("rank candidate %d: %w", i, err)
			}
			start := time.Now()
			out[i] = scoreCandidate(r.matcher, candidates[i], jd, jdSkills)
			r.observe(RankedObservation{Score: out[i].Score, Duration: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	order(out)
	return out, nil
}

// RankRoles scores a resume against every role and returns the fits sorted
// by score, highest first, keeping table order on ties.
func (r *Ranker) RankRoles(ctx context.Context, resumeText string, roles []model.RoleDescriptor) ([]model.RoleFit, error) {
	out := make([]model.RoleFit, len(roles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range roles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("score role %q: %w", roles[i].Title, err)
			}
			out[i] = model.RoleFit{Role: roles[i], Score: similarity.MatchScore(resumeText, roles[i].Description)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out, nil
}

// RankResumes is the sequential form of Ranker.Rank.
func RankResumes(m *skills.Matcher, candidates []model.ResumeRecord, jd string) []model.RankedCandidate {
	jdSkills := m.Extract(jd)
	out := make([]model.RankedCandidate, len(candidates))
	for i, c := range candidates {
		out[i] = scoreCandidate(m, c, jd, jdSkills)
	}
	order(out)
	return out
}

// Summarize aggregates a ranking.
func Summarize(ranked []model.RankedCandidate) model.Summary {
	s := model.Summary{Total: len(ranked)}
	if len(ranked) == 0 {
		return s
	}
	var sum float64
	for _, c := range ranked {
		sum += c.Score
		if c.Score >= strongMatch {
			s.Strong++
		}
		if c.Score > s.TopScore {
			s.TopScore = c.Score
		}
	}
	s.AverageScore = similarity.Round(sum/float64(len(ranked)), 2)
	return s
}

func order(out []model.RankedCandidate) {
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	for i := range out {
		out[i].Rank = i + 1
	}
}

func scoreCandidate(m *skills.Matcher, c model.ResumeRecord, jd string, jdSkills []string) model.RankedCandidate {
	resumeSkills := c.Skills
	if resumeSkills == nil {
		resumeSkills = m.Extract(c.Text)
	}
	match := similarity.DetailedMatchScore(c.Text, jd, resumeSkills)
	gap := m.Compare(resumeSkills, jdSkills)
	match.MatchedSkills = gap.MatchedSkills
	match.MissingSkills = gap.MissingSkills

	experience := model.NotApplicable
	if y, ok := c.Years(); ok {
		experience = fmt.Sprintf("%d years", y)
	}
	return model.RankedCandidate{
		ID:         c.Key(),
		Name:       orDefault(c.Name, model.UnknownName),
		Email:      orDefault(c.Email, model.NotApplicable),
		Phone:      orDefault(c.Phone, model.NotApplicable),
		Experience: experience,
		Education:  orDefault(c.Education, model.NotApplicable),
		Skills:     resumeSkills,
		Score:      match.Score,
		Match:      match,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
