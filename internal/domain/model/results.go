package model

// MatchResult is the detailed comparison of one resume against one job
// description. It is recomputed on every call.
type MatchResult struct {
	Score           float64  `json:"score"`
	BaseScore       float64  `json:"base_score"`
	SkillsBonus     float64  `json:"skills_bonus"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	ResumeKeywords  []string `json:"resume_keywords"`
	JDKeywords      []string `json:"jd_keywords"`
}

// SkillGap partitions the skills a job asks for into matched and missing.
type SkillGap struct {
	ResumeSkills    []string `json:"resume_skills"`
	JobSkills       []string `json:"job_skills"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	MatchPercentage float64  `json:"match_percentage"`
}

// Breakdown holds the four components of a strength score.
type Breakdown struct {
	Completeness float64 `json:"completeness"`
	Relevance    float64 `json:"relevance"`
	Experience   float64 `json:"experience"`
	Keywords     float64 `json:"keywords"`
}

// Sum adds up the components.
func (b Breakdown) Sum() float64 {
	return b.Completeness + b.Relevance + b.Experience + b.Keywords
}

// StrengthReport is the graded strength of a resume for one role.
type StrengthReport struct {
	Breakdown  Breakdown `json:"breakdown"`
	TotalScore float64   `json:"total_score"`
	Grade      string    `json:"grade"`
}

// RankedCandidate is one row of a ranking.
type RankedCandidate struct {
	Rank       int         `json:"rank"`
	ID         string      `json:"id,omitempty"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Experience string      `json:"experience"`
	Education  string      `json:"education"`
	Skills     []string    `json:"skills"`
	Score      float64     `json:"score"`
	Match      MatchResult `json:"match"`
}

// Priority of a suggestion.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Suggestion is an actionable improvement for a resume.
type Suggestion struct {
	Category   string   `json:"category"`
	Priority   Priority `json:"priority"`
	Suggestion string   `json:"suggestion"`
	Action     string   `json:"action"`
}

// RoleFit is how well a resume fits one role of the table.
type RoleFit struct {
	Role  RoleDescriptor `json:"role"`
	Score float64        `json:"score"`
}

// Summary aggregates a ranking.
type Summary struct {
	Total        int     `json:"total"`
	Strong       int     `json:"strong"`
	AverageScore float64 `json:"average_score"`
	TopScore     float64 `json:"top_score"`
}
