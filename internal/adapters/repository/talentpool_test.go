package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/screener/internal/adapters/repository"
	"github.com/okian/screener/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func candidate(id string, score float64) model.RankedCandidate {
	return model.RankedCandidate{ID: id, Name: "Name " + id, Score: score}
}

func TestTreapPool(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty talent pool", t, func() {
		pool := repository.NewTreapPool()

		Convey("Then it tracks nothing", func() {
			So(pool.Count(ctx, "Data Scientist"), ShouldEqual, 0)
			So(pool.Roles(ctx), ShouldBeEmpty)
			top, err := pool.TopN(ctx, "Data Scientist", 5)
			So(err, ShouldBeNil)
			So(top, ShouldBeEmpty)
		})

		Convey("When offering a candidate", func() {
			changed, err := pool.Offer(ctx, "Data Scientist", candidate("a", 72.5))
			So(err, ShouldBeNil)
			So(changed, ShouldBeTrue)

			Convey("Then rank and count reflect it", func() {
				So(pool.Count(ctx, "Data Scientist"), ShouldEqual, 1)
				e, err := pool.Rank(ctx, "Data Scientist", "a")
				So(err, ShouldBeNil)
				So(e.Rank, ShouldEqual, 1)
				So(e.Score, ShouldEqual, 72.5)
				So(e.Name, ShouldEqual, "Name a")
			})

			Convey("Then a lower or equal score is ignored", func() {
				changed, err := pool.Offer(ctx, "Data Scientist", candidate("a", 60.0))
				So(err, ShouldBeNil)
				So(changed, ShouldBeFalse)
				changed, err = pool.Offer(ctx, "Data Scientist", candidate("a", 72.5))
				So(err, ShouldBeNil)
				So(changed, ShouldBeFalse)
				e, _ := pool.Rank(ctx, "Data Scientist", "a")
				So(e.Score, ShouldEqual, 72.5)
			})

			Convey("Then a higher score replaces the best", func() {
				changed, err := pool.Offer(ctx, "Data Scientist", candidate("a", 88.0))
				So(err, ShouldBeNil)
				So(changed, ShouldBeTrue)
				So(pool.Count(ctx, "Data Scientist"), ShouldEqual, 1)
				e, _ := pool.Rank(ctx, "Data Scientist", "a")
				So(e.Score, ShouldEqual, 88.0)
			})

			Convey("Then other roles are independent", func() {
				So(pool.Count(ctx, "Web Developer"), ShouldEqual, 0)
				_, err := pool.Rank(ctx, "Web Developer", "a")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(pool.Roles(ctx), ShouldResemble, []string{"Data Scientist"})
			})
		})

		Convey("When offering incomplete entries", func() {
			_, err := pool.Offer(ctx, "", candidate("a", 50))
			So(errors.Is(err, repository.ErrInvalidEntry), ShouldBeTrue)
			_, err = pool.Offer(ctx, "Data Scientist", candidate("", 50))
			So(errors.Is(err, repository.ErrInvalidEntry), ShouldBeTrue)
		})

		Convey("When asking for a non-positive limit", func() {
			_, err := pool.TopN(ctx, "Data Scientist", 0)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
		})

		Convey("When asking for an unknown candidate", func() {
			_, _ = pool.Offer(ctx, "Data Scientist", candidate("a", 50))
			_, err := pool.Rank(ctx, "Data Scientist", "ghost")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given several candidates for one role", t, func() {
		pool := repository.NewTreapPool()
		role := "Backend Developer"
		_, _ = pool.Offer(ctx, role, candidate("low", 40))
		_, _ = pool.Offer(ctx, role, candidate("tie-first", 80))
		_, _ = pool.Offer(ctx, role, candidate("top", 95.25))
		_, _ = pool.Offer(ctx, role, candidate("tie-second", 80))

		Convey("Then TopN orders by score with first arrival winning ties", func() {
			top, err := pool.TopN(ctx, role, 10)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 4)
			ids := make([]string, len(top))
			for i, e := range top {
				ids[i] = e.CandidateID
				So(e.Rank, ShouldEqual, i+1)
			}
			So(ids, ShouldResemble, []string{"top", "tie-first", "tie-second", "low"})
		})

		Convey("Then TopN truncates to the limit", func() {
			top, err := pool.TopN(ctx, role, 2)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 2)
			So(top[1].CandidateID, ShouldEqual, "tie-first")
		})

		Convey("Then Rank agrees with TopN", func() {
			e, err := pool.Rank(ctx, role, "tie-second")
			So(err, ShouldBeNil)
			So(e.Rank, ShouldEqual, 3)
			e, err = pool.Rank(ctx, role, "low")
			So(err, ShouldBeNil)
			So(e.Rank, ShouldEqual, 4)
		})

		Convey("Then an improved score moves the candidate up", func() {
			_, _ = pool.Offer(ctx, role, candidate("low", 99))
			e, err := pool.Rank(ctx, role, "low")
			So(err, ShouldBeNil)
			So(e.Rank, ShouldEqual, 1)
		})
	})

	Convey("Given a pool with a maximum limit", t, func() {
		pool := repository.NewTreapPool(repository.WithMaxLimit(3))
		for i := 0; i < 10; i++ {
			_, _ = pool.Offer(ctx, "QA Engineer", candidate(fmt.Sprintf("c%d", i), float64(i)))
		}

		Convey("Then TopN is clamped", func() {
			top, err := pool.TopN(ctx, "QA Engineer", 50)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 3)
			So(top[0].CandidateID, ShouldEqual, "c9")
		})
	})

	Convey("Given concurrent offers", t, func() {
		pool := repository.NewTreapPool()
		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					_, _ = pool.Offer(ctx, "DevOps Engineer", candidate(fmt.Sprintf("c%d", i), float64(w*100+i)/10))
				}
			}()
		}
		wg.Wait()

		Convey("Then every candidate is kept once in sorted order", func() {
			So(pool.Count(ctx, "DevOps Engineer"), ShouldEqual, 100)
			top, err := pool.TopN(ctx, "DevOps Engineer", 100)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 100)
			for i := 1; i < len(top); i++ {
				So(top[i-1].Score, ShouldBeGreaterThanOrEqualTo, top[i].Score)
			}
			// Worker 7 offers the highest score for every candidate.
			e, err := pool.Rank(ctx, "DevOps Engineer", "c99")
			So(err, ShouldBeNil)
			So(e.Score, ShouldEqual, 79.9)
		})
	})
}
