// Package advice turns match results into actionable feedback.
package advice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/okian/screener/internal/domain/keywords"
	"github.com/okian/screener/internal/domain/model"
)

const (
	topMissingSkills   = 5
	suggestionKeywords = 15
	missingKeywords    = 5
	minWords           = 300
	maxWords           = 1500
	minMetrics         = 3
	greatMatch         = 70.0
	maxRecommendations = 5
)

// Suggestion categories, in the order the rules run.
const (
	CategorySkillsGap    = "Skills Gap"
	CategoryKeywords     = "Keywords"
	CategoryLength       = "Resume Length"
	CategoryQuantifiable = "Quantifiable Results"
)

var metricPattern = regexp.MustCompile(`\d+%|\d+x|\d+\+`)

// GenerateSuggestions applies the improvement rules in a fixed order: skills
// gap, keywords, length, quantifiable results.
func GenerateSuggestions(resumeText, jdText string, missingSkills []string) []model.Suggestion {
	out := []model.Suggestion{}

	if len(missingSkills) > 0 {
		out = append(out, model.Suggestion{
			Category:   CategorySkillsGap,
			Priority:   model.PriorityHigh,
			Suggestion: "Add these in-demand skills: " + strings.Join(head(missingSkills, topMissingSkills), ", "),
			Action:     "Take online courses or work on projects to gain these skills",
		})
	}

	if kw := missingKeywordsOf(resumeText, jdText); len(kw) > 0 {
		out = append(out, model.Suggestion{
			Category:   CategoryKeywords,
			Priority:   model.PriorityMedium,
			Suggestion: "Include keywords: " + strings.Join(kw, ", "),
			Action:     "Naturally incorporate these terms in your experience and projects",
		})
	}

	switch words := len(strings.Fields(resumeText)); {
	case words < minWords:
		out = append(out, model.Suggestion{
			Category:   CategoryLength,
			Priority:   model.PriorityMedium,
			Suggestion: "Resume seems too short",
			Action:     "Add more details about projects, achievements, and responsibilities",
		})
	case words > maxWords:
		out = append(out, model.Suggestion{
			Category:   CategoryLength,
			Priority:   model.PriorityLow,
			Suggestion: "Resume is quite lengthy",
			Action:     "Focus on relevant experience and achievements",
		})
	}

	if len(metricPattern.FindAllString(resumeText, -1)) < minMetrics {
		out = append(out, model.Suggestion{
			Category:   CategoryQuantifiable,
			Priority:   model.PriorityHigh,
			Suggestion: "Add measurable achievements",
			Action:     "Include metrics: 'Improved performance by 30%', 'Led team of 5', etc.",
		})
	}
	return out
}

// missingKeywordsOf returns up to five top job keywords absent from the
// resume's top keywords, in job salience order.
func missingKeywordsOf(resumeText, jdText string) []string {
	have := make(map[string]struct{})
	for _, k := range keywords.Extract(resumeText, suggestionKeywords) {
		have[k] = struct{}{}
	}
	var out []string
	for _, k := range keywords.Extract(jdText, suggestionKeywords) {
		if _, ok := have[k]; ok {
			continue
		}
		out = append(out, k)
		if len(out) == missingKeywords {
			break
		}
	}
	return out
}

// Verdict of the career advice.
const (
	VerdictGreatMatch  = "great_match"
	VerdictDevelopment = "development_needed"
)

// CareerAdvice is guidance for a candidate targeting a role.
type CareerAdvice struct {
	Verdict    string   `json:"verdict"`
	Headline   string   `json:"headline"`
	Steps      []string `json:"steps"`
	FocusAreas []string `json:"focus_areas,omitempty"`
}

// Advise builds career advice from a skill gap.
func Advise(role string, gap model.SkillGap) CareerAdvice {
	if gap.MatchPercentage >= greatMatch {
		return CareerAdvice{
			Verdict:  VerdictGreatMatch,
			Headline: fmt.Sprintf("Great match! You're well-suited for the %s position.", role),
			Steps: []string{
				fmt.Sprintf("Apply to %s positions confidently", role),
				fmt.Sprintf("Highlight your %s skills in interviews", strings.Join(head(gap.MatchedSkills, 3), ", ")),
				"Consider certifications to stand out",
			},
		}
	}
	return CareerAdvice{
		Verdict:  VerdictDevelopment,
		Headline: fmt.Sprintf("Development needed for %s", role),
		Steps: []string{
			fmt.Sprintf("Build projects: create 2-3 projects using %s", strings.Join(head(gap.MissingSkills, 3), ", ")),
			"Take courses: enroll in online courses for missing skills",
			"Update resume: add new skills and projects once completed",
			"Timeline: plan 3-6 months for skill development",
		},
		FocusAreas: head(gap.MissingSkills, topMissingSkills),
	}
}

// ResourceFinder resolves learning resources for a skill.
type ResourceFinder interface {
	Resource(skill string) (string, bool)
}

// Recommendation points at a way to learn a missing skill.
type Recommendation struct {
	Skill    string `json:"skill"`
	Resource string `json:"resource"`
}

// Recommend maps up to five missing skills to learning resources.
func Recommend(finder ResourceFinder, missingSkills []string) []Recommendation {
	out := []Recommendation{}
	for _, s := range head(missingSkills, maxRecommendations) {
		r, _ := finder.Resource(s)
		out = append(out, Recommendation{Skill: s, Resource: r})
	}
	return out
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
