package advice_test

import (
	"strings"
	"testing"

	"github.com/okian/screener/internal/catalog"
	"github.com/okian/screener/internal/domain/advice"
	"github.com/okian/screener/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const jd = "Looking for a Data Analyst with SQL, Excel, Power BI, Python"

func words(n int, word string) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func categories(s []model.Suggestion) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Category
	}
	return out
}

func TestGenerateSuggestions(t *testing.T) {
	Convey("Given a short resume with no metrics", t, func() {
		resume := words(120, "analyst")
		got := advice.GenerateSuggestions(resume, jd, nil)

		Convey("Then it is flagged as too short", func() {
			So(got, ShouldContain, model.Suggestion{
				Category:   advice.CategoryLength,
				Priority:   model.PriorityMedium,
				Suggestion: "Resume seems too short",
				Action:     "Add more details about projects, achievements, and responsibilities",
			})
		})

		Convey("Then measurable achievements are requested", func() {
			last := got[len(got)-1]
			So(last.Category, ShouldEqual, advice.CategoryQuantifiable)
			So(last.Priority, ShouldEqual, model.PriorityHigh)
			So(last.Suggestion, ShouldEqual, "Add measurable achievements")
		})
	})

	Convey("Given missing skills and keywords", t, func() {
		missing := []string{"excel", "power bi", "tableau", "looker", "dax", "vba"}
		got := advice.GenerateSuggestions("Python developer", jd, missing)

		Convey("Then the rules fire in fixed order", func() {
			So(categories(got), ShouldResemble, []string{
				advice.CategorySkillsGap,
				advice.CategoryKeywords,
				advice.CategoryLength,
				advice.CategoryQuantifiable,
			})
		})

		Convey("Then only the top five missing skills are listed", func() {
			So(got[0].Suggestion, ShouldEqual, "Add these in-demand skills: excel, power bi, tableau, looker, dax")
			So(got[0].Priority, ShouldEqual, model.PriorityHigh)
		})

		Convey("Then missing keywords follow job salience order", func() {
			So(got[1].Suggestion, ShouldEqual, "Include keywords: looking, data, analyst, sql, excel")
			So(got[1].Priority, ShouldEqual, model.PriorityMedium)
		})
	})

	Convey("Given a long quantified resume covering the job", t, func() {
		resume := jd + " Improved revenue 30%, cut latency 4x, led 10+ engineers. " + words(1600, "delivery")
		got := advice.GenerateSuggestions(resume, jd, nil)

		Convey("Then only the length rule fires, at low priority", func() {
			So(len(got), ShouldEqual, 1)
			So(got[0].Category, ShouldEqual, advice.CategoryLength)
			So(got[0].Priority, ShouldEqual, model.PriorityLow)
			So(got[0].Suggestion, ShouldEqual, "Resume is quite lengthy")
		})
	})
}

func TestAdvise(t *testing.T) {
	Convey("Given a strong skill match", t, func() {
		a := advice.Advise("Data Analyst", model.SkillGap{
			MatchedSkills:   []string{"python", "sql", "excel", "power bi"},
			MatchPercentage: 80,
		})

		Convey("Then it is a great match highlighting three skills", func() {
			So(a.Verdict, ShouldEqual, advice.VerdictGreatMatch)
			So(a.Steps[1], ShouldEqual, "Highlight your python, sql, excel skills in interviews")
		})
	})

	Convey("Given a weak skill match", t, func() {
		a := advice.Advise("Data Analyst", model.SkillGap{
			MissingSkills:   []string{"excel", "power bi"},
			MatchPercentage: 50,
		})

		Convey("Then development is advised with focus areas", func() {
			So(a.Verdict, ShouldEqual, advice.VerdictDevelopment)
			So(a.FocusAreas, ShouldResemble, []string{"excel", "power bi"})
		})
	})
}

func TestRecommend(t *testing.T) {
	Convey("Given missing skills", t, func() {
		recs := advice.Recommend(catalog.MustDefault(), []string{"sql", "cobol", "aws", "docker", "react", "python"})

		Convey("Then at most five are mapped", func() {
			So(len(recs), ShouldEqual, 5)
			So(recs[0].Resource, ShouldContainSubstring, "SQLZoo")
			So(recs[1].Resource, ShouldContainSubstring, "official documentation")
		})
	})
}
