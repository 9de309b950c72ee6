package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/screener/internal/domain/advice"
	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/parser"
	"github.com/okian/screener/internal/domain/similarity"
	"github.com/okian/screener/internal/domain/strength"
	"github.com/okian/screener/pkg/metrics"
)

const (
	customRole  = "Custom Role"
	topRoleFits = 5
)

// RankReport is the synchronous ranking of a candidate set.
type RankReport struct {
	Role    model.RoleDescriptor    `json:"role"`
	Ranking []model.RankedCandidate `json:"ranking"`
	Summary model.Summary           `json:"summary"`
}

// SkillReport lists the skills found in a text.
type SkillReport struct {
	Skills     []string              `json:"skills"`
	Categories []model.SkillCategory `json:"categories"`
}

// Analysis is the full report for one resume against one role.
type Analysis struct {
	Record          model.ResumeRecord      `json:"record"`
	ATS             parser.ATSReport        `json:"ats"`
	Role            model.RoleDescriptor    `json:"role"`
	Match           model.MatchResult       `json:"match"`
	Strength        model.StrengthReport    `json:"strength"`
	SkillGap        model.SkillGap          `json:"skill_gap"`
	Categories      []model.SkillCategory   `json:"categories"`
	Suggestions     []model.Suggestion      `json:"suggestions"`
	Advice          advice.CareerAdvice     `json:"advice"`
	Recommendations []advice.Recommendation `json:"recommendations"`
	RoleFits        []model.RoleFit         `json:"role_fits"`
}

// Match scores resumeText against jd with the resume's own skills as bonus.
func (s *Service) Match(resumeText, jd string) model.MatchResult {
	start := time.Now()
	resumeSkills := s.matcher.Extract(resumeText)
	res := similarity.DetailedMatchScore(resumeText, jd, resumeSkills)
	gap := s.matcher.Compare(resumeSkills, s.matcher.Extract(jd))
	res.MatchedSkills = gap.MatchedSkills
	res.MissingSkills = gap.MissingSkills
	metrics.RecordMatchScored(float64(time.Since(start).Microseconds()) / 1000)
	return res
}

// Skills extracts and groups the skills of text.
func (s *Service) Skills(text string) SkillReport {
	found := s.matcher.Extract(text)
	return SkillReport{Skills: found, Categories: s.matcher.Categorize(found)}
}

// Gap compares the skills of a resume with those of a job description.
func (s *Service) Gap(resumeText, jd string) model.SkillGap {
	return s.matcher.Gap(resumeText, jd)
}

// Strength parses resumeText and scores its overall strength against jd.
func (s *Service) Strength(resumeText, jd string) model.StrengthReport {
	return strength.Score(s.Parse(resumeText), jd)
}

// Suggestions lists improvements for resumeText against jd.
func (s *Service) Suggestions(resumeText, jd string) []model.Suggestion {
	return advice.GenerateSuggestions(resumeText, jd, s.matcher.Gap(resumeText, jd).MissingSkills)
}

// RoleFits returns the best-fitting catalog roles for resumeText.
func (s *Service) RoleFits(ctx context.Context, resumeText string, limit int) ([]model.RoleFit, error) {
	fits, err := s.ranker.RankRoles(ctx, resumeText, s.catalog.Roles())
	if err != nil {
		return nil, fmt.Errorf("role fit: %w", err)
	}
	if limit > 0 && len(fits) > limit {
		fits = fits[:limit]
	}
	return fits, nil
}

// Analyze runs every check on one resume against t.
func (s *Service) Analyze(ctx context.Context, resumeText string, t Target) (Analysis, error) {
	role, err := s.Resolve(t)
	if err != nil {
		return Analysis{}, err
	}
	fits, err := s.RoleFits(ctx, resumeText, topRoleFits)
	if err != nil {
		return Analysis{}, err
	}

	record := s.Parse(resumeText)
	jd := role.Description
	gap := s.matcher.Compare(record.Skills, s.matcher.Extract(jd))

	return Analysis{
		Record:          record,
		ATS:             parser.ATSScore(record),
		Role:            role,
		Match:           s.Match(resumeText, jd),
		Strength:        strength.Score(record, jd),
		SkillGap:        gap,
		Categories:      s.matcher.Categorize(record.Skills),
		Suggestions:     advice.GenerateSuggestions(resumeText, jd, gap.MissingSkills),
		Advice:          advice.Advise(role.Title, gap),
		Recommendations: advice.Recommend(s.catalog, gap.MissingSkills),
		RoleFits:        fits,
	}, nil
}
