package parser

import "github.com/okian/screener/internal/domain/model"

// ATS points per section.
const (
	atsName        = 10
	atsEmail       = 15
	atsPhone       = 10
	atsExpSenior   = 20
	atsExpMid      = 15
	atsExpJunior   = 10
	atsEduPhD      = 15
	atsEduMasters  = 13
	atsEduOther    = 10
	atsProjectsMax = 10
	atsProjectsMin = 5
)

// ATSReport rates how well an applicant tracking system can read a resume.
type ATSReport struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
}

// ATSScore rates the parsed sections of a resume out of 80.
func ATSScore(r model.ResumeRecord) ATSReport {
	rep := ATSReport{Feedback: []string{}}

	if r.Name != "" && r.Name != model.NameNotFound {
		rep.Score += atsName
	} else {
		rep.Feedback = append(rep.Feedback, "Name not clearly identified")
	}

	if r.Email != "" && r.Email != model.NotFound {
		rep.Score += atsEmail
	} else {
		rep.Feedback = append(rep.Feedback, "Email missing - add a professional email")
	}

	if r.Phone != "" && r.Phone != model.NotFound {
		rep.Score += atsPhone
	} else {
		rep.Feedback = append(rep.Feedback, "Phone number missing")
	}

	if years, ok := r.Years(); ok {
		switch {
		case years >= 5:
			rep.Score += atsExpSenior
		case years >= 2:
			rep.Score += atsExpMid
		default:
			rep.Score += atsExpJunior
		}
	} else {
		rep.Feedback = append(rep.Feedback, "Experience not clearly mentioned - add years of experience")
	}

	switch r.Education {
	case "", model.NotSpecified:
		rep.Feedback = append(rep.Feedback, "Education not found - add your degree")
	case model.EducationPhD:
		rep.Score += atsEduPhD
	case model.EducationMasters:
		rep.Score += atsEduMasters
	default:
		rep.Score += atsEduOther
	}

	switch {
	case r.ProjectCount >= 3:
		rep.Score += atsProjectsMax
	case r.ProjectCount > 0:
		rep.Score += atsProjectsMin
	default:
		rep.Feedback = append(rep.Feedback, "No projects mentioned - add relevant projects")
	}
	return rep
}
