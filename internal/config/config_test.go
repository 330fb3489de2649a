package config_test

import (
	"testing"

	"github.com/okian/agora/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 300)
			convey.So(cfg.DefaultPageSize, convey.ShouldEqual, 20)
			convey.So(cfg.MaxPageSize, convey.ShouldEqual, 100)
			convey.So(cfg.MatchMinScore, convey.ShouldEqual, 50)
			convey.So(cfg.MatchMaxReasons, convey.ShouldEqual, 3)
			convey.So(cfg.DecayBatchSize, convey.ShouldEqual, 100)
			convey.So(cfg.DecayBatchDelayMS, convey.ShouldEqual, 500)
			convey.So(cfg.DecayIntervalMinutes, convey.ShouldEqual, 60)
		})

		convey.Convey("Then the dimension weights sum to one", func() {
			sumContribution := 0.0
			for _, w := range cfg.ContributionWeights {
				sumContribution += w
			}
			convey.So(sumContribution, convey.ShouldAlmostEqual, 1.0, 1e-9)

			sumMatch := 0.0
			for _, w := range cfg.MatchWeights {
				sumMatch += w
			}
			convey.So(sumMatch, convey.ShouldAlmostEqual, 1.0, 1e-9)
		})
	})
}
