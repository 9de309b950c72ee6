package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/screener/internal/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultCatalog(t *testing.T) {
	Convey("Given the embedded catalog", t, func() {
		c, err := catalog.Default()
		So(err, ShouldBeNil)

		Convey("Then it should list every role in table order", func() {
			roles := c.Roles()
			So(len(roles), ShouldEqual, 25)
			So(roles[0].Title, ShouldEqual, "Data Scientist")
			So(roles[24].Title, ShouldEqual, "UI/UX Designer")
		})

		Convey("Then roles carry category and level", func() {
			r, err := c.Role("Data Analyst")
			So(err, ShouldBeNil)
			So(r.Category, ShouldEqual, "Data & Analytics")
			So(r.Level, ShouldEqual, "Entry-Mid")
			So(r.Description, ShouldContainSubstring, "Power BI")
		})

		Convey("Then an unknown role is reported", func() {
			_, err := c.Role("Astronaut")
			So(errors.Is(err, catalog.ErrUnknownRole), ShouldBeTrue)
		})

		Convey("Then the skill vocabulary is grouped in declared order", func() {
			cats := c.Categories()
			So(len(cats), ShouldEqual, 14)
			So(cats[0].Name, ShouldEqual, "programming")
			So(cats[0].Skills, ShouldContain, "c++")
			So(cats[13].Name, ShouldEqual, "soft_skills")
		})

		Convey("Then resources fall back to generic advice", func() {
			r, ok := c.Resource("SQL")
			So(ok, ShouldBeTrue)
			So(r, ShouldContainSubstring, "SQLZoo")

			r, ok = c.Resource("cobol")
			So(ok, ShouldBeFalse)
			So(r, ShouldNotBeEmpty)
		})

		Convey("Then returned slices are copies", func() {
			roles := c.Roles()
			roles[0].Title = "changed"
			So(c.Roles()[0].Title, ShouldEqual, "Data Scientist")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given custom catalog documents", t, func() {
		skills := []byte("categories:\n  - name: lang\n    skills: [\" Go \", Rust]\n")

		Convey("When the role table is valid", func() {
			roles := []byte("roles:\n  - title: Gopher\n    description: Writes Go services\n")
			c, err := catalog.Parse(roles, skills)

			Convey("Then missing categories default to Other and skills are lowercased", func() {
				So(err, ShouldBeNil)
				r, err := c.Role("Gopher")
				So(err, ShouldBeNil)
				So(r.Category, ShouldEqual, "Other")
				So(c.Categories()[0].Skills, ShouldResemble, []string{"go", "rust"})
			})
		})

		Convey("When a role title is duplicated", func() {
			roles := []byte("roles:\n  - title: A\n  - title: A\n")
			_, err := catalog.Parse(roles, skills)

			Convey("Then parsing fails", func() {
				So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
			})
		})

		Convey("When the role table is empty", func() {
			_, err := catalog.Parse([]byte("roles: []\n"), skills)

			Convey("Then parsing fails", func() {
				So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
			})
		})

		Convey("When the YAML is malformed", func() {
			_, err := catalog.Parse([]byte("roles: [\n"), skills)

			Convey("Then parsing fails", func() {
				So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
			})
		})
	})
}

func TestLoadFiles(t *testing.T) {
	Convey("Given a roles override file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "roles.yaml")
		So(os.WriteFile(path, []byte("roles:\n  - title: Gopher\n    category: Eng\n"), 0o600), ShouldBeNil)

		Convey("When loading with the embedded skills", func() {
			c, err := catalog.LoadFiles(path, "")

			Convey("Then the override replaces the role table only", func() {
				So(err, ShouldBeNil)
				So(len(c.Roles()), ShouldEqual, 1)
				So(len(c.Categories()), ShouldEqual, 14)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := catalog.LoadFiles(filepath.Join(dir, "missing.yaml"), "")

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
