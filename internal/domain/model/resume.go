// Package model contains domain models passed between layers.
package model

// Sentinels reported when the parser could not find a field.
const (
	NameNotFound  = "Name Not Found"
	NotFound      = "Not Found"
	NotSpecified  = "Not Specified"
	UnknownName   = "Unknown"
	NotApplicable = "N/A"
)

// Education levels, highest first.
const (
	EducationPhD      = "PhD"
	EducationMasters  = "Master's"
	EducationBachelor = "Bachelor's"
	EducationDiploma  = "Diploma"
)

// ResumeRecord is the structured view of one resume. Text is the source of
// truth; every other field is derived from it or supplied by the caller.
type ResumeRecord struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Education       string   `json:"education"`
	Skills          []string `json:"skills,omitempty"`
	Universities    []string `json:"universities,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	ProjectCount    int      `json:"project_count"`
	Text            string   `json:"text"`
}

// Key returns the identity used to track the candidate across screenings.
func (r ResumeRecord) Key() string {
	switch {
	case r.ID != "":
		return r.ID
	case r.Email != "" && r.Email != NotFound:
		return r.Email
	case r.Name != "" && r.Name != NameNotFound:
		return r.Name
	}
	return ""
}

// Years reports the experience in years and whether it is known.
func (r ResumeRecord) Years() (int, bool) {
	if r.ExperienceYears == nil {
		return 0, false
	}
	return *r.ExperienceYears, true
}

// RoleDescriptor is one entry of the immutable role table.
type RoleDescriptor struct {
	Title       string `json:"title" yaml:"title"`
	Category    string `json:"category" yaml:"category"`
	Level       string `json:"level" yaml:"level"`
	Description string `json:"description" yaml:"description"`
}

// SkillCategory groups vocabulary entries under a domain name.
type SkillCategory struct {
	Name   string   `json:"category" yaml:"name"`
	Skills []string `json:"skills" yaml:"skills"`
}
