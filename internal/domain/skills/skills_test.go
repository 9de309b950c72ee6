package skills_test

import (
	"testing"

	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/skills"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	m := skills.Default()

	Convey("Given text naming symbol-bearing languages", t, func() {
		got := m.Extract("I use C++ and C# daily")

		Convey("Then both are found distinctly", func() {
			So(got, ShouldContain, "c++")
			So(got, ShouldContain, "c#")
		})
	})

	Convey("Given a skill embedded in a longer word", t, func() {
		got := m.Extract("Experienced in django and golang; javascript fan")

		Convey("Then only whole terms match", func() {
			So(got, ShouldContain, "golang")
			So(got, ShouldContain, "javascript")
			So(got, ShouldContain, "django")
			So(got, ShouldNotContain, "go")
			So(got, ShouldNotContain, "java")
		})
	})

	Convey("Given mixed case multi-word skills", t, func() {
		got := m.Extract("Strong in Machine Learning, POWER BI and CI/CD.")

		Convey("Then they are found in vocabulary order", func() {
			So(got, ShouldResemble, []string{"machine learning", "ci/cd", "power bi"})
		})
	})

	Convey("Given empty text", t, func() {
		So(m.Extract(""), ShouldBeEmpty)
	})
}

func TestGap(t *testing.T) {
	m := skills.Default()

	Convey("Given the data analyst scenario", t, func() {
		gap := m.Gap(
			"5 years experience in Python and SQL, Bachelor's degree",
			"Looking for a Data Analyst with SQL, Excel, Power BI, Python",
		)

		Convey("Then python and sql match", func() {
			So(gap.MatchedSkills, ShouldResemble, []string{"python", "sql"})
		})

		Convey("Then excel and power bi are missing", func() {
			So(gap.MissingSkills, ShouldContain, "excel")
			So(gap.MissingSkills, ShouldContain, "power bi")
		})

		Convey("Then the percentage is exact", func() {
			expected := 100 * float64(len(gap.MatchedSkills)) / float64(len(gap.JobSkills))
			So(gap.MatchPercentage, ShouldEqual, expected)
			So(gap.MatchPercentage, ShouldEqual, 50.0)
		})

		Convey("Then matched and missing partition the job skills", func() {
			union := append(append([]string{}, gap.MatchedSkills...), gap.MissingSkills...)
			So(len(union), ShouldEqual, len(gap.JobSkills))
			for _, s := range gap.JobSkills {
				So(union, ShouldContain, s)
			}
			for _, s := range gap.MatchedSkills {
				So(gap.MissingSkills, ShouldNotContain, s)
			}
		})
	})

	Convey("Given a job with no vocabulary skills", t, func() {
		gap := m.Gap("python", "friendly and punctual")

		Convey("Then nothing matches and the percentage is zero", func() {
			So(gap.JobSkills, ShouldBeEmpty)
			So(gap.MatchedSkills, ShouldBeEmpty)
			So(gap.MissingSkills, ShouldBeEmpty)
			So(gap.MatchPercentage, ShouldEqual, 0.0)
		})
	})

	Convey("Given one of three job skills", t, func() {
		gap := m.Compare([]string{"go"}, []string{"go", "rust", "sql"})

		Convey("Then the percentage is not rounded", func() {
			So(gap.MatchPercentage, ShouldEqual, 100.0/3.0)
		})
	})
}

func TestCategorize(t *testing.T) {
	Convey("Given a small vocabulary", t, func() {
		m := skills.NewMatcher([]model.SkillCategory{
			{Name: "programming", Skills: []string{"kotlin", "go"}},
			{Name: "mobile", Skills: []string{"android", "Kotlin"}},
			{Name: "empty", Skills: []string{"cobol"}},
		})

		Convey("When categorizing skills", func() {
			got := m.Categorize([]string{"kotlin", "go", "android"})

			Convey("Then shared skills appear in every category", func() {
				So(got, ShouldResemble, []model.SkillCategory{
					{Name: "programming", Skills: []string{"kotlin", "go"}},
					{Name: "mobile", Skills: []string{"kotlin", "android"}},
				})
			})
		})

		Convey("Then the vocabulary is deduplicated", func() {
			So(m.Vocabulary(), ShouldResemble, []string{"kotlin", "go", "android", "cobol"})
		})
	})
}
