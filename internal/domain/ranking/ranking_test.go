package ranking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/screener/internal/catalog"
	"github.com/okian/screener/internal/domain/model"
	"github.com/okian/screener/internal/domain/ranking"
	"github.com/okian/screener/internal/domain/skills"
	. "github.com/smartystreets/goconvey/convey"
)

const jd = "Looking for a Data Analyst with SQL, Excel, Power BI, Python, dashboards and statistics."

func candidates() []model.ResumeRecord {
	return []model.ResumeRecord{
		{ID: "weak", Name: "Wendy Weak", Text: "Barista and florist. Latte art and bouquets."},
		{ID: "twin-a", Name: "Anna Twin", Text: "Analyst using SQL and Excel for reports."},
		{ID: "strong", Name: "Sam Strong", Text: "Data analyst: SQL, Excel, Power BI, Python, statistics and dashboards."},
		{ID: "twin-b", Name: "Bert Twin", Text: "Analyst using SQL and Excel for reports."},
	}
}

func ids(ranked []model.RankedCandidate) []string {
	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.ID
	}
	return out
}

func TestRankResumes(t *testing.T) {
	m := skills.Default()

	Convey("Given a pool of candidates", t, func() {
		ranked := ranking.RankResumes(m, candidates(), jd)

		Convey("Then they are sorted by score, highest first", func() {
			for i := 1; i < len(ranked); i++ {
				So(ranked[i-1].Score, ShouldBeGreaterThanOrEqualTo, ranked[i].Score)
			}
			So(ranked[0].ID, ShouldEqual, "strong")
			So(ranked[len(ranked)-1].ID, ShouldEqual, "weak")
		})

		Convey("Then equal scores keep input order", func() {
			So(ids(ranked), ShouldResemble, []string{"strong", "twin-a", "twin-b", "weak"})
		})

		Convey("Then ranks are assigned from one", func() {
			for i, c := range ranked {
				So(c.Rank, ShouldEqual, i+1)
			}
		})

		Convey("Then skills are extracted and compared against the role", func() {
			So(ranked[0].Skills, ShouldContain, "power bi")
			So(ranked[0].Match.MissingSkills, ShouldBeEmpty)
			So(ranked[1].Match.MissingSkills, ShouldContain, "power bi")
		})
	})

	Convey("Given a candidate with missing fields", t, func() {
		ranked := ranking.RankResumes(m, []model.ResumeRecord{{Text: "python"}}, jd)

		Convey("Then defaults are filled in", func() {
			So(ranked[0].Name, ShouldEqual, "Unknown")
			So(ranked[0].Email, ShouldEqual, "N/A")
			So(ranked[0].Phone, ShouldEqual, "N/A")
			So(ranked[0].Experience, ShouldEqual, "N/A")
			So(ranked[0].Education, ShouldEqual, "N/A")
		})
	})

	Convey("Given tagged skills", t, func() {
		ranked := ranking.RankResumes(m, []model.ResumeRecord{{Text: "reports", Skills: []string{"excel", "sql"}}}, jd)

		Convey("Then the tags are used instead of the text", func() {
			So(ranked[0].Skills, ShouldResemble, []string{"excel", "sql"})
			So(ranked[0].Match.SkillsBonus, ShouldEqual, 1.0)
		})
	})

	Convey("Given no candidates", t, func() {
		So(ranking.RankResumes(m, nil, jd), ShouldBeEmpty)
	})
}

func TestRanker(t *testing.T) {
	m := skills.Default()

	Convey("Given a concurrent ranker", t, func() {
		observed := 0
		r := ranking.New(m, ranking.WithWorkers(1), ranking.WithObserver(func(ranking.RankedObservation) { observed++ }))

		Convey("When ranking the pool", func() {
			got, err := r.Rank(context.Background(), candidates(), jd)

			Convey("Then the result matches the sequential ranking", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, ranking.RankResumes(m, candidates(), jd))
				So(observed, ShouldEqual, 4)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := r.Rank(ctx, candidates(), jd)

			Convey("Then the cancellation is reported", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given many workers", t, func() {
		r := ranking.New(m, ranking.WithWorkers(8))
		got, err := r.Rank(context.Background(), candidates(), jd)

		Convey("Then ordering is still deterministic", func() {
			So(err, ShouldBeNil)
			So(ids(got), ShouldResemble, []string{"strong", "twin-a", "twin-b", "weak"})
		})
	})
}

func TestRankRoles(t *testing.T) {
	Convey("Given a data analyst resume", t, func() {
		roles := catalog.MustDefault().Roles()
		r := ranking.New(skills.Default())
		fits, err := r.RankRoles(context.Background(), "Data analyst: SQL, Excel, Power BI, Tableau, Python, pandas and dashboards.", roles)

		Convey("Then every role is scored in descending order", func() {
			So(err, ShouldBeNil)
			So(len(fits), ShouldEqual, len(roles))
			for i := 1; i < len(fits); i++ {
				So(fits[i-1].Score, ShouldBeGreaterThanOrEqualTo, fits[i].Score)
			}
			So(fits[0].Score, ShouldBeGreaterThan, fits[len(fits)-1].Score)
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a ranking", t, func() {
		s := ranking.Summarize([]model.RankedCandidate{{Score: 80}, {Score: 70}, {Score: 30}})

		Convey("Then counts and averages are reported", func() {
			So(s.Total, ShouldEqual, 3)
			So(s.Strong, ShouldEqual, 2)
			So(s.AverageScore, ShouldEqual, 60.0)
			So(s.TopScore, ShouldEqual, 80.0)
		})
	})

	Convey("Given an empty ranking", t, func() {
		So(ranking.Summarize(nil), ShouldResemble, model.Summary{})
	})
}
