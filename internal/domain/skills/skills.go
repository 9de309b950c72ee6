// Package skills finds vocabulary skills in text and compares skill sets.
package skills

import (
	"regexp"
	"strings"
	"sync"

	"github.com/okian/screener/internal/catalog"
	"github.com/okian/screener/internal/domain/model"
)

// A skill matches only when its neighbours are not letters, digits or
// underscores, so "c++" and "c#" are distinct whole terms.
const (
	boundaryBefore = `(?:^|[^\p{L}\p{N}_])`
	boundaryAfter  = `(?:$|[^\p{L}\p{N}_])`
)

// Matcher holds the compiled vocabulary. It is immutable and safe for
// concurrent use.
type Matcher struct {
	vocab      []string
	patterns   []*regexp.Regexp
	position   map[string]int
	categories []model.SkillCategory
}

// NewMatcher compiles the vocabulary. Skills listed in several categories
// are matched once, at their first position.
func NewMatcher(categories []model.SkillCategory) *Matcher {
	m := &Matcher{position: make(map[string]int)}
	for _, cat := range categories {
		skills := make([]string, 0, len(cat.Skills))
		for _, s := range cat.Skills {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			skills = append(skills, s)
			if _, dup := m.position[s]; dup {
				continue
			}
			m.position[s] = len(m.vocab)
			m.vocab = append(m.vocab, s)
			m.patterns = append(m.patterns, regexp.MustCompile(boundaryBefore+regexp.QuoteMeta(s)+boundaryAfter))
		}
		m.categories = append(m.categories, model.SkillCategory{Name: cat.Name, Skills: skills})
	}
	return m
}

var (
	defaultOnce    sync.Once
	defaultMatcher *Matcher
)

// Default returns a matcher over the embedded catalog vocabulary.
func Default() *Matcher {
	defaultOnce.Do(func() {
		defaultMatcher = NewMatcher(catalog.MustDefault().Categories())
	})
	return defaultMatcher
}

// Vocabulary returns every distinct skill in vocabulary order.
func (m *Matcher) Vocabulary() []string {
	return append([]string(nil), m.vocab...)
}

// Extract returns the vocabulary skills present in text, case-insensitively,
// in vocabulary order.
func (m *Matcher) Extract(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for i, re := range m.patterns {
		if !strings.Contains(lower, m.vocab[i]) {
			continue
		}
		if re.MatchString(lower) {
			found = append(found, m.vocab[i])
		}
	}
	return found
}

// Categorize groups skills by vocabulary category, in category order. A
// skill that belongs to several categories appears under each of them.
// Categories with no skills are omitted.
func (m *Matcher) Categorize(skills []string) []model.SkillCategory {
	out := []model.SkillCategory{}
	for _, cat := range m.categories {
		members := make(map[string]struct{}, len(cat.Skills))
		for _, s := range cat.Skills {
			members[s] = struct{}{}
		}
		var hits []string
		for _, s := range skills {
			if _, ok := members[s]; ok {
				hits = append(hits, s)
			}
		}
		if len(hits) > 0 {
			out = append(out, model.SkillCategory{Name: cat.Name, Skills: hits})
		}
	}
	return out
}

// Gap extracts skills from both texts and compares them.
func (m *Matcher) Gap(resumeText, jobText string) model.SkillGap {
	return m.Compare(m.Extract(resumeText), m.Extract(jobText))
}

// Compare splits the job skills into those the resume has and those it
// lacks. Both lists keep the order of jobSkills; MatchPercentage is
// 100·|matched|/|jobSkills|, or 0 with no job skills.
func (m *Matcher) Compare(resumeSkills, jobSkills []string) model.SkillGap {
	have := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		have[strings.ToLower(s)] = struct{}{}
	}
	gap := model.SkillGap{
		ResumeSkills:  nonNil(resumeSkills),
		JobSkills:     nonNil(jobSkills),
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}
	seen := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := have[strings.ToLower(s)]; ok {
			gap.MatchedSkills = append(gap.MatchedSkills, s)
		} else {
			gap.MissingSkills = append(gap.MissingSkills, s)
		}
	}
	if len(seen) > 0 {
		gap.MatchPercentage = 100 * float64(len(gap.MatchedSkills)) / float64(len(seen))
	}
	return gap
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
