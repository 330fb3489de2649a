package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/agora/internal/adapters/repository"
	"github.com/okian/agora/internal/domain/matching"
	"github.com/okian/agora/internal/domain/scoring"
	"github.com/okian/agora/internal/domain/types"
	"github.com/okian/agora/internal/domain/window"
	"github.com/smartystreets/goconvey/convey"
)

func TestMemStore_ContributionStats(t *testing.T) {
	convey.Convey("Given a store with engagements inside and outside a window", t, func() {
		ctx := context.Background()
		now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
		store := repository.NewMemStore(repository.WithClock(func() time.Time { return now }))

		store.RecordEngagement("alice", now.Add(-2*24*time.Hour), scoring.ContributionCounters{Likes: 5, Views: 100})
		store.RecordEngagement("alice", now.Add(-1*time.Hour), scoring.ContributionCounters{Likes: 3, CommentsGiven: 2})
		store.RecordEngagement("alice", now.Add(-20*24*time.Hour), scoring.ContributionCounters{Likes: 50})
		store.RecordEngagement("bob", now.Add(-20*24*time.Hour), scoring.ContributionCounters{Comments: 7})

		convey.Convey("When aggregating over the trailing week", func() {
			stats, err := store.ContributionStats(ctx, window.Resolve(types.PeriodWeek, now))

			convey.Convey("Then only in-window deltas are summed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stats, convey.ShouldHaveLength, 1)
				convey.So(stats[0].SubjectID, convey.ShouldEqual, "alice")
				convey.So(stats[0].Counters.Likes, convey.ShouldEqual, 8)
				convey.So(stats[0].Counters.Views, convey.ShouldEqual, 100)
				convey.So(stats[0].Counters.CommentsGiven, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When aggregating over the unbounded total period", func() {
			stats, err := store.ContributionStats(ctx, window.Resolve(types.PeriodTotal, now))

			convey.Convey("Then every subject appears, ordered by id", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stats, convey.ShouldHaveLength, 2)
				convey.So(stats[0].SubjectID, convey.ShouldEqual, "alice")
				convey.So(stats[0].Counters.Likes, convey.ShouldEqual, 58)
				convey.So(stats[1].SubjectID, convey.ShouldEqual, "bob")
				convey.So(stats[1].Counters.Comments, convey.ShouldEqual, 7)
			})
		})

		convey.Convey("When the context is already canceled", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := store.ContributionStats(canceled, window.Resolve(types.PeriodWeek, now))

			convey.Convey("Then the aggregation error wraps the cause", func() {
				convey.So(errors.Is(err, repository.ErrAggregation), convey.ShouldBeTrue)
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMemStore_Profiles(t *testing.T) {
	convey.Convey("Given a store with profiles", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		store.SetProfile(matching.Profile{SubjectID: "bob", Interests: []string{"go"}})
		store.SetProfile(matching.Profile{SubjectID: "alice", Interests: []string{"db"}})

		convey.Convey("Then a single profile can be looked up", func() {
			p, err := store.Profile(ctx, "alice")
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Interests, convey.ShouldResemble, []string{"db"})
		})

		convey.Convey("Then an unknown subject yields ErrNotFound", func() {
			_, err := store.Profile(ctx, "mallory")
			convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
		})

		convey.Convey("Then the pool lists all profiles ordered by id", func() {
			pool, err := store.Profiles(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(pool, convey.ShouldHaveLength, 2)
			convey.So(pool[0].SubjectID, convey.ShouldEqual, "alice")
			convey.So(pool[1].SubjectID, convey.ShouldEqual, "bob")
		})

		convey.Convey("Then replacing a profile overwrites it", func() {
			store.SetProfile(matching.Profile{SubjectID: "alice", Interests: []string{"rust"}})
			p, err := store.Profile(ctx, "alice")
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Interests, convey.ShouldResemble, []string{"rust"})
		})
	})
}

func TestMemStore_Content(t *testing.T) {
	convey.Convey("Given a store with content of varying age", t, func() {
		ctx := context.Background()
		now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
		store := repository.NewMemStore(repository.WithClock(func() time.Time { return now }))

		store.PutContent(repository.ContentItem{ID: "old", CreatedAt: now.Add(-48 * time.Hour)})
		store.PutContent(repository.ContentItem{ID: "fresh", CreatedAt: now.Add(-10 * time.Minute)})

		convey.Convey("When listing without a minimum age", func() {
			items, err := store.ContentItems(ctx, 0)

			convey.Convey("Then everything is returned ordered by id", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(items, convey.ShouldHaveLength, 2)
				convey.So(items[0].ID, convey.ShouldEqual, "fresh")
				convey.So(items[1].ID, convey.ShouldEqual, "old")
			})
		})

		convey.Convey("When listing with a one-hour minimum age", func() {
			items, err := store.ContentItems(ctx, time.Hour)

			convey.Convey("Then fresh items are skipped", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(items, convey.ShouldHaveLength, 1)
				convey.So(items[0].ID, convey.ShouldEqual, "old")
			})
		})

		convey.Convey("When updating hotness", func() {
			convey.So(store.UpdateHotness(ctx, "old", 1.25), convey.ShouldBeNil)

			items, err := store.ContentItems(ctx, 0)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the new value is persisted", func() {
				convey.So(items[1].ID, convey.ShouldEqual, "old")
				convey.So(items[1].Hotness, convey.ShouldEqual, 1.25)
			})
		})

		convey.Convey("When updating hotness of an unknown item", func() {
			err := store.UpdateHotness(ctx, "ghost", 1.0)

			convey.Convey("Then it yields ErrNotFound", func() {
				convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMemStore_Count(t *testing.T) {
	convey.Convey("Given a store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		convey.Convey("Then count follows the subjects with recorded activity", func() {
			convey.So(store.Count(ctx), convey.ShouldEqual, 0)
			store.RecordEngagement("alice", time.Now(), scoring.ContributionCounters{Likes: 1})
			store.RecordEngagement("alice", time.Now(), scoring.ContributionCounters{Likes: 1})
			store.RecordEngagement("bob", time.Now(), scoring.ContributionCounters{Views: 1})
			convey.So(store.Count(ctx), convey.ShouldEqual, 2)
		})
	})
}
