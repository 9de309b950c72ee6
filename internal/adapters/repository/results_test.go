package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/screener/internal/adapters/repository"
	"github.com/okian/screener/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryResults(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given a screening store with a fixed clock", t, func() {
		store := repository.NewMemoryResults(repository.WithClock(func() time.Time { return fixed }))

		Convey("When creating a screening", func() {
			res, err := store.Create(ctx, model.ScreeningJob{ID: "s1", Role: "Data Analyst"})
			So(err, ShouldBeNil)

			Convey("Then it starts pending", func() {
				So(res.Status, ShouldEqual, model.ScreeningPending)
				So(res.SubmittedAt.Equal(fixed), ShouldBeTrue)
				got, err := store.Get(ctx, "s1")
				So(err, ShouldBeNil)
				So(got.Role, ShouldEqual, "Data Analyst")
				So(got.CompletedAt, ShouldBeNil)
				So(store.Count(ctx)[model.ScreeningPending], ShouldEqual, 1)
			})

			Convey("Then the same ID cannot be created twice", func() {
				_, err := store.Create(ctx, model.ScreeningJob{ID: "s1"})
				So(errors.Is(err, repository.ErrAlreadyExists), ShouldBeTrue)
			})

			Convey("Then completing it stores the ranking", func() {
				ranked := []model.RankedCandidate{{Rank: 1, ID: "a", Score: 81}}
				err := store.Complete(ctx, "s1", ranked, model.Summary{Total: 1, Strong: 1, AverageScore: 81, TopScore: 81})
				So(err, ShouldBeNil)

				got, err := store.Get(ctx, "s1")
				So(err, ShouldBeNil)
				So(got.Status, ShouldEqual, model.ScreeningDone)
				So(got.Ranking, ShouldResemble, ranked)
				So(got.Summary.Strong, ShouldEqual, 1)
				So(got.CompletedAt.Equal(fixed), ShouldBeTrue)

				Convey("And callers cannot mutate the stored ranking", func() {
					got.Ranking[0].Score = 0
					again, _ := store.Get(ctx, "s1")
					So(again.Ranking[0].Score, ShouldEqual, 81.0)
				})
			})

			Convey("Then failing it records the reason", func() {
				So(store.Fail(ctx, "s1", "deadline exceeded"), ShouldBeNil)
				got, err := store.Get(ctx, "s1")
				So(err, ShouldBeNil)
				So(got.Status, ShouldEqual, model.ScreeningFailed)
				So(got.Error, ShouldEqual, "deadline exceeded")
				So(store.Count(ctx)[model.ScreeningFailed], ShouldEqual, 1)
			})
		})

		Convey("When deleting a screening", func() {
			_, _ = store.Create(ctx, model.ScreeningJob{ID: "s2"})
			store.Delete(ctx, "s2")

			Convey("Then it is gone", func() {
				_, err := store.Get(ctx, "s2")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When touching an unknown screening", func() {
			_, err := store.Get(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(errors.Is(store.Complete(ctx, "missing", nil, model.Summary{}), repository.ErrNotFound), ShouldBeTrue)
			So(errors.Is(store.Fail(ctx, "missing", "x"), repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
