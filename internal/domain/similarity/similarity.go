// Package similarity scores how well a resume matches a job description.
package similarity

import (
	"math"

	"github.com/okian/screener/internal/domain/keywords"
	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/textnorm"
)

// Scoring constants.
const (
	cosineWeight  = 0.7
	overlapWeight = 0.3

	overlapKeywords = 30
	detailKeywords  = 25
	displayKeywords = 15
	displayMatches  = 10
	bonusPerSkill   = 0.5
	maxSkillsBonus  = 10.0
	maxScore        = 100.0
)

// MatchScore returns the match of resume against jd in [0,100], rounded to
// two decimals. It blends TF-IDF cosine similarity over the two texts with
// the share of the job's top keywords present in the resume's top keywords.
func MatchScore(resume, jd string) float64 {
	return matchScore(resume, jd, keywords.Extract(resume, overlapKeywords), keywords.Extract(jd, overlapKeywords))
}

func matchScore(resume, jd string, resumeKW, jdKW []string) float64 {
	var cos float64
	if space, err := keywords.Fit(textnorm.Tokens(resume), textnorm.Tokens(jd)); err == nil {
		cos = space.Cosine(0, 1)
	}
	final := cos*cosineWeight + keywords.Overlap(resumeKW, jdKW)*overlapWeight
	return clamp(Round(final*100, 2))
}

// DetailedMatchScore extends MatchScore with keyword diagnostics and a bonus
// of half a point per tagged resume skill, capped at ten. MatchedSkills and
// MissingSkills are left for skill-aware callers to fill.
func DetailedMatchScore(resume, jd string, resumeSkills []string) model.MatchResult {
	resumeKW := keywords.Extract(resume, overlapKeywords)
	jdKW := keywords.Extract(jd, overlapKeywords)
	base := matchScore(resume, jd, resumeKW, jdKW)

	resumeTop := head(resumeKW, detailKeywords)
	jdTop := head(jdKW, detailKeywords)
	inResume := make(map[string]struct{}, len(resumeTop))
	for _, k := range resumeTop {
		inResume[k] = struct{}{}
	}
	matched := make([]string, 0, len(jdTop))
	missing := make([]string, 0, len(jdTop))
	for _, k := range jdTop {
		if _, ok := inResume[k]; ok {
			matched = append(matched, k)
		} else {
			missing = append(missing, k)
		}
	}

	bonus := math.Min(float64(len(resumeSkills))*bonusPerSkill, maxSkillsBonus)
	return model.MatchResult{
		Score:           clamp(Round(base+bonus, 2)),
		BaseScore:       base,
		SkillsBonus:     bonus,
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		MatchedKeywords: head(matched, displayMatches),
		MissingKeywords: head(missing, displayMatches),
		ResumeKeywords:  head(resumeTop, displayKeywords),
		JDKeywords:      head(jdTop, displayKeywords),
	}
}

// Round rounds v to the given number of decimals, halves away from zero.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(maxScore, v))
}

func head(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
