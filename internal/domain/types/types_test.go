package types_test

import (
	"testing"

	"github.com/okian/agora/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseScoreType(t *testing.T) {
	convey.Convey("Given score type strings", t, func() {
		convey.Convey("Then known values parse after trimming and lowering", func() {
			got, err := types.ParseScoreType("  Contribution ")
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, types.ScoreContribution)

			got, err = types.ParseScoreType("topic_quality")
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, types.ScoreTopicQuality)
		})

		convey.Convey("Then unknown values yield ErrInvalidScoreType", func() {
			_, err := types.ParseScoreType("karma")
			convey.So(err, convey.ShouldEqual, types.ErrInvalidScoreType)

			_, err = types.ParseScoreType("")
			convey.So(err, convey.ShouldEqual, types.ErrInvalidScoreType)
		})
	})
}

func TestParsePeriod(t *testing.T) {
	convey.Convey("Given period strings", t, func() {
		convey.Convey("Then the three periods parse", func() {
			for _, s := range []string{"week", "month", "total"} {
				got, err := types.ParsePeriod(s)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(got), convey.ShouldEqual, s)
			}
		})

		convey.Convey("Then anything else yields ErrInvalidPeriod", func() {
			_, err := types.ParsePeriod("quarter")
			convey.So(err, convey.ShouldEqual, types.ErrInvalidPeriod)
		})
	})
}

func TestParseMatchType(t *testing.T) {
	convey.Convey("Given match type strings", t, func() {
		convey.Convey("Then the three dimensions parse", func() {
			for _, s := range []string{"comprehensive", "profile", "behavior"} {
				got, err := types.ParseMatchType(s)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(got), convey.ShouldEqual, s)
			}
		})

		convey.Convey("Then anything else yields ErrInvalidMatchType", func() {
			_, err := types.ParseMatchType("social")
			convey.So(err, convey.ShouldEqual, types.ErrInvalidMatchType)
		})
	})
}

func TestScoreBreakdown_Dimension(t *testing.T) {
	convey.Convey("Given a breakdown", t, func() {
		b := types.ScoreBreakdown{TopicQuality: 1, Interaction: 2, HelpOthers: 3, Total: 6}

		convey.Convey("Then each selector picks its dimension", func() {
			convey.So(b.Dimension(types.ScoreTopicQuality), convey.ShouldEqual, 1)
			convey.So(b.Dimension(types.ScoreInteraction), convey.ShouldEqual, 2)
			convey.So(b.Dimension(types.ScoreHelpOthers), convey.ShouldEqual, 3)
			convey.So(b.Dimension(types.ScoreContribution), convey.ShouldEqual, 6)
		})
	})
}

func TestSimilarityBreakdown_Dimension(t *testing.T) {
	convey.Convey("Given a similarity breakdown", t, func() {
		b := types.SimilarityBreakdown{Profile: 10, Behavior: 20, Comprehensive: 30}

		convey.Convey("Then each selector picks its dimension", func() {
			convey.So(b.Dimension(types.MatchProfile), convey.ShouldEqual, 10)
			convey.So(b.Dimension(types.MatchBehavior), convey.ShouldEqual, 20)
			convey.So(b.Dimension(types.MatchComprehensive), convey.ShouldEqual, 30)
		})
	})
}
