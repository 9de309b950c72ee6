// Package strength grades how strong a resume is for a role.
package strength

import (
	"math"

	"github.com/okian/screener/internal/domain/keywords"
	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/similarity"
)

// Component caps. They add up to 100.
const (
	completenessMax = 25.0
	relevanceMax    = 40.0
	experienceMax   = 20.0
	keywordsMax     = 15.0

	experienceFullYears = 5.0
	strengthKeywords    = 20
	requiredFields      = 5
)

var grades = []struct {
	min   float64
	grade string
}{
	{90, "A+"},
	{85, "A"},
	{80, "A-"},
	{75, "B+"},
	{70, "B"},
	{65, "B-"},
	{60, "C+"},
	{55, "C"},
}

// Score grades record against a job description. Breakdown values are
// rounded to two decimals and the total to one; the grade is taken from the
// unrounded total.
func Score(record model.ResumeRecord, jd string) model.StrengthReport {
	raw := model.Breakdown{
		Completeness: completeness(record),
		Relevance:    similarity.MatchScore(record.Text, jd) / 100 * relevanceMax,
		Experience:   experience(record),
		Keywords: keywords.Overlap(
			keywords.Extract(record.Text, strengthKeywords),
			keywords.Extract(jd, strengthKeywords),
		) * keywordsMax,
	}
	total := math.Min(raw.Sum(), 100)
	return model.StrengthReport{
		Breakdown: model.Breakdown{
			Completeness: similarity.Round(raw.Completeness, 2),
			Relevance:    similarity.Round(raw.Relevance, 2),
			Experience:   similarity.Round(raw.Experience, 2),
			Keywords:     similarity.Round(raw.Keywords, 2),
		},
		TotalScore: similarity.Round(total, 1),
		Grade:      Grade(total),
	}
}

// Grade maps a total score to a letter grade. Each band includes its lower
// bound.
func Grade(total float64) string {
	for _, g := range grades {
		if total >= g.min {
			return g.grade
		}
	}
	return "D"
}

func completeness(r model.ResumeRecord) float64 {
	filled := 0
	for _, v := range []string{r.Name, r.Email, r.Phone, r.Education} {
		if present(v) {
			filled++
		}
	}
	if years, ok := r.Years(); ok && years > 0 {
		filled++
	}
	return float64(filled) / requiredFields * completenessMax
}

func present(v string) bool {
	switch v {
	case "", model.NotFound, model.NotSpecified, model.NameNotFound:
		return false
	}
	return true
}

func experience(r model.ResumeRecord) float64 {
	years, ok := r.Years()
	if !ok {
		return 0
	}
	return math.Max(0, math.Min(float64(years)/experienceFullYears*experienceMax, experienceMax))
}
