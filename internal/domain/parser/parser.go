// Package parser extracts structured fields from plain-text resumes.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okian/screener/internal/domain/model"
)

const (
	nameScanLines     = 10
	maxNameDigits     = 3
	minNameWords      = 2
	maxNameWords      = 4
	minNameAlphaRatio = 0.7
	maxUniversities   = 3
	maxCertifications = 5
	maxCertLineLen    = 150
	projectWindow     = 1000
)

var (
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\d{10}`),
		regexp.MustCompile(`\+\d{12}`),
	}
	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\s*(?:of)?\s*(?:experience|exp)`),
		regexp.MustCompile(`experience[:\s]+(\d+)\+?\s*(?:years?|yrs?)`),
		regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\s*experience`),
	}
	dateRangePattern   = regexp.MustCompile(`(\d{4})\s*[-–—]\s*(\d{4}|present|current)`)
	universityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`university of [a-z ]+`),
		regexp.MustCompile(`[a-z ]+ university`),
		regexp.MustCompile(`[a-z ]+ institute of technology`),
		regexp.MustCompile(`iit [a-z]+`),
		regexp.MustCompile(`nit [a-z]+`),
	}
	numberedItem = regexp.MustCompile(`\n\d+\.`)

	nameSkipWords = []string{"resume", "cv", "curriculum", "vitae", "profile", "contact", "objective"}

	// Highest degree first.
	educationKeywords = []struct {
		degree   string
		keywords []string
	}{
		{model.EducationPhD, []string{"phd", "ph.d", "doctorate", "doctoral"}},
		{model.EducationMasters, []string{"master", "msc", "m.sc", "mba", "m.tech", "m.s"}},
		{model.EducationBachelor, []string{"bachelor", "bsc", "b.sc", "b.tech", "b.e", "b.s", "undergraduate"}},
		{model.EducationDiploma, []string{"diploma", "associate"}},
	}

	certKeywords = []string{
		"aws certified", "azure certified", "google cloud certified",
		"pmp", "cissp", "comptia", "certified", "certification",
		"coursera", "udacity", "nanodegree",
	}

	projectKeywords = []string{"projects", "project work", "key projects"}
)

// Parser turns resume text into a ResumeRecord. It is safe for concurrent
// use.
type Parser struct {
	now func() time.Time
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts every field it can find. Fields that are not found carry
// the model sentinels. Skills are left for the skill matcher.
func (p *Parser) Parse(text string) model.ResumeRecord {
	return model.ResumeRecord{
		Name:            Name(text),
		Email:           Email(text),
		Phone:           Phone(text),
		ExperienceYears: p.Experience(text),
		Education:       Education(text),
		Universities:    Universities(text),
		Certifications:  Certifications(text),
		ProjectCount:    Projects(text),
		Text:            text,
	}
}

// Email returns the first email address in text.
func Email(text string) string {
	if m := emailPattern.FindString(text); m != "" {
		return m
	}
	return model.NotFound
}

// Phone returns the first phone number in text.
func Phone(text string) string {
	for _, re := range phonePatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return model.NotFound
}

// Name guesses the candidate name from the first lines of the resume: a line
// of two to four mostly alphabetic words that is not contact data or a
// section header.
func Name(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		if line == "" || strings.Contains(line, "@") || strings.Contains(lower, "http") {
			continue
		}
		if countRunes(line, unicode.IsDigit) > maxNameDigits {
			continue
		}
		if containsAny(lower, nameSkipWords) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < minNameWords || len(words) > maxNameWords {
			continue
		}
		alpha := countRunes(line, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsSpace(r) })
		if float64(alpha)/float64(len([]rune(line))) > minNameAlphaRatio {
			return cases.Title(language.English).String(line)
		}
	}
	return model.NameNotFound
}

// Experience returns the years of experience stated in text, or summed from
// year ranges. Nil means not specified.
func (p *Parser) Experience(text string) *int {
	lower := strings.ToLower(text)
	for _, re := range experiencePatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return &n
			}
		}
	}

	ranges := dateRangePattern.FindAllStringSubmatch(lower, -1)
	if len(ranges) == 0 {
		return nil
	}
	currentYear := p.now().Year()
	total := 0
	for _, r := range ranges {
		start, _ := strconv.Atoi(r[1])
		end := currentYear
		if r[2] != "present" && r[2] != "current" {
			end, _ = strconv.Atoi(r[2])
		}
		if end > start {
			total += end - start
		}
	}
	if total == 0 {
		return nil
	}
	return &total
}

// Education returns the highest degree mentioned in text.
func Education(text string) string {
	lower := strings.ToLower(text)
	for _, e := range educationKeywords {
		if containsAny(lower, e.keywords) {
			return e.degree
		}
	}
	return model.NotSpecified
}

// Universities returns up to three institution names in order of appearance.
func Universities(text string) []string {
	lower := strings.ToLower(text)
	title := cases.Title(language.English)
	seen := make(map[string]struct{})
	out := []string{}
	for _, re := range universityPatterns {
		for _, m := range re.FindAllString(lower, -1) {
			name := title.String(strings.TrimSpace(m))
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
			if len(out) == maxUniversities {
				return out
			}
		}
	}
	return out
}

// Certifications returns up to five short lines that mention a
// certification.
func Certifications(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) >= maxCertLineLen {
			continue
		}
		if containsAny(strings.ToLower(line), certKeywords) {
			out = append(out, strings.TrimSpace(line))
			if len(out) == maxCertifications {
				break
			}
		}
	}
	return out
}

// Projects counts the bullet or numbered items following a projects
// heading.
func Projects(text string) int {
	lower := strings.ToLower(text)
	for _, kw := range projectKeywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		end := min(idx+projectWindow, len(lower))
		section := lower[idx:end]
		bullets := strings.Count(section, "•") + strings.Count(section, "*") + strings.Count(section, "-")
		numbers := len(numberedItem.FindAllStringIndex(section, -1))
		if n := max(bullets, numbers); n > 0 {
			return n
		}
	}
	return 0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func countRunes(s string, pred func(rune) bool) int {
	n := 0
	for _, r := range s {
		if pred(r) {
			n++
		}
	}
	return n
}
