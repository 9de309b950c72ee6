package keywords_test

import (
	"errors"
	"testing"

	"github.com/okian/screener/internal/domain/keywords"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("Given a job description", t, func() {
		text := "Python developer. Python, SQL and Docker. Docker on AWS, Python everywhere."

		Convey("When extracting keywords", func() {
			got := keywords.Extract(text, 3)

			Convey("Then the most frequent terms come first", func() {
				So(got, ShouldResemble, []string{"python", "docker", "developer"})
			})
		})

		Convey("When topN exceeds the vocabulary", func() {
			got := keywords.Extract(text, 100)

			Convey("Then every distinct term is returned once", func() {
				So(got, ShouldResemble, []string{"python", "docker", "developer", "sql", "aws", "everywhere"})
			})
		})

		Convey("When topN is not positive", func() {
			So(keywords.Extract(text, 0), ShouldBeEmpty)
			So(keywords.Extract(text, -1), ShouldBeEmpty)
		})

		Convey("When extracting twice", func() {
			Convey("Then the output is identical", func() {
				So(keywords.Extract(text, 5), ShouldResemble, keywords.Extract(text, 5))
			})
		})
	})

	Convey("Given text made only of stopwords", t, func() {
		got := keywords.Extract("the and the of", 2)

		Convey("Then raw frequency is used instead", func() {
			So(got, ShouldResemble, []string{"the", "and"})
		})
	})

	Convey("Given empty text", t, func() {
		So(keywords.Extract("", 10), ShouldBeEmpty)
	})
}

func TestOverlap(t *testing.T) {
	Convey("Given two keyword lists", t, func() {
		So(keywords.Overlap([]string{"go", "sql"}, []string{"sql", "excel", "go", "python"}), ShouldEqual, 0.5)
		So(keywords.Overlap([]string{"go"}, nil), ShouldEqual, 0.0)
	})
}

func TestFit(t *testing.T) {
	Convey("Given two documents", t, func() {
		space, err := keywords.Fit([]string{"go", "sql", "go"}, []string{"sql", "excel"})
		So(err, ShouldBeNil)

		Convey("Then the vocabulary follows first occurrence", func() {
			So(space.Vocabulary(), ShouldResemble, []string{"go", "sql", "excel"})
		})

		Convey("Then a document is identical to itself", func() {
			So(space.Cosine(0, 0), ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Then the shared term yields partial similarity", func() {
			c := space.Cosine(0, 1)
			So(c, ShouldBeGreaterThan, 0)
			So(c, ShouldBeLessThan, 1)
		})
	})

	Convey("Given a document with no terms", t, func() {
		space, err := keywords.Fit([]string{}, []string{"go"})
		So(err, ShouldBeNil)

		Convey("Then its similarity is zero", func() {
			So(space.Cosine(0, 1), ShouldEqual, 0.0)
		})
	})

	Convey("Given no terms at all", t, func() {
		_, err := keywords.Fit(nil, []string{})

		Convey("Then the vocabulary is reported empty", func() {
			So(errors.Is(err, keywords.ErrEmptyVocabulary), ShouldBeTrue)
		})
	})
}
