package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/agora/internal/adapters/http/api"
	"github.com/okian/agora/internal/adapters/repository"
	service "github.com/okian/agora/internal/app"
	"github.com/okian/agora/internal/domain/matching"
	"github.com/okian/agora/internal/domain/scoring"
	"github.com/okian/agora/internal/domain/types"
	"github.com/okian/agora/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// newTestMux starts a service over a seeded store and registers every route.
func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	_ = logger.Init()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := repository.NewMemStore(repository.WithClock(func() time.Time { return now }))

	store.RecordEngagement("alice", now.Add(-time.Hour), scoring.ContributionCounters{Likes: 50})
	store.RecordEngagement("bob", now.Add(-time.Hour), scoring.ContributionCounters{Likes: 25})
	store.SetProfile(matching.Profile{SubjectID: "alice", Interests: []string{"go"}, Categories: map[string]int{"go": 3}})
	store.SetProfile(matching.Profile{SubjectID: "bob", Interests: []string{"go"}, Categories: map[string]int{"go": 3}})
	store.PutContent(repository.ContentItem{
		ID:        "post-1",
		AuthorID:  "alice",
		CreatedAt: now.Add(-10 * time.Hour),
		Counters:  scoring.HotnessCounters{Views: 20, Likes: 4},
	})

	svc := service.New(
		service.WithStore(store),
		service.WithClock(func() time.Time { return now }),
		service.WithDecayBatchDelay(0),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, 100).Register(context.Background(), mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, target, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRankingsEndpoint(t *testing.T) {
	convey.Convey("Given the API routes", t, func() {
		mux := newTestMux(t)

		convey.Convey("When requesting a valid ranking page", func() {
			rec := doRequest(mux, http.MethodGet, "/rankings?type=contribution&period=total", "alice")

			convey.Convey("Then the page is returned with the viewer's own rank", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				var page types.RankingPage
				convey.So(json.Unmarshal(rec.Body.Bytes(), &page), convey.ShouldBeNil)
				convey.So(page.Rankings, convey.ShouldHaveLength, 2)
				convey.So(page.Rankings[0].SubjectID, convey.ShouldEqual, "alice")
				convey.So(page.MyRanking, convey.ShouldNotBeNil)
				convey.So(page.MyRanking.Rank, convey.ShouldEqual, 1)
			})

			convey.Convey("Then a request id header is attached", func() {
				convey.So(rec.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When the score type is unknown", func() {
			rec := doRequest(mux, http.MethodGet, "/rankings?type=karma&period=total", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("When the period is unknown", func() {
			rec := doRequest(mux, http.MethodGet, "/rankings?type=contribution&period=decade", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("When the page is not a positive integer", func() {
			rec := doRequest(mux, http.MethodGet, "/rankings?type=contribution&period=total&page=zero", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("When the page size exceeds the cap", func() {
			rec := doRequest(mux, http.MethodGet, "/rankings?type=contribution&period=total&page_size=5000", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestMatchesEndpoint(t *testing.T) {
	convey.Convey("Given the API routes", t, func() {
		mux := newTestMux(t)

		convey.Convey("When requesting matches with a viewer header", func() {
			rec := doRequest(mux, http.MethodGet, "/matches?type=comprehensive", "alice")

			convey.Convey("Then the match page is returned", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				var page types.MatchPage
				convey.So(json.Unmarshal(rec.Body.Bytes(), &page), convey.ShouldBeNil)
				convey.So(page.Matches, convey.ShouldHaveLength, 1)
				convey.So(page.Matches[0].SubjectID, convey.ShouldEqual, "bob")
			})
		})

		convey.Convey("When the viewer header is missing", func() {
			rec := doRequest(mux, http.MethodGet, "/matches?type=comprehensive", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("When the viewer has no profile", func() {
			rec := doRequest(mux, http.MethodGet, "/matches?type=comprehensive", "mallory")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusNotFound)
		})

		convey.Convey("When the match type is unknown", func() {
			rec := doRequest(mux, http.MethodGet, "/matches?type=social", "alice")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("When min_score is negative", func() {
			rec := doRequest(mux, http.MethodGet, "/matches?type=comprehensive&min_score=-5", "alice")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestRefreshEndpoint(t *testing.T) {
	convey.Convey("Given the API routes", t, func() {
		mux := newTestMux(t)

		convey.Convey("When posting a refresh for a known viewer", func() {
			rec := doRequest(mux, http.MethodPost, "/matches/refresh", "alice")

			convey.Convey("Then the request is acknowledged with an id", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusAccepted)

				var body struct {
					Status    string `json:"status"`
					RequestID string `json:"request_id"`
				}
				convey.So(json.Unmarshal(rec.Body.Bytes(), &body), convey.ShouldBeNil)
				convey.So(body.Status, convey.ShouldEqual, "accepted")
				convey.So(body.RequestID, convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When posting a refresh for an unknown viewer", func() {
			rec := doRequest(mux, http.MethodPost, "/matches/refresh", "mallory")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusNotFound)
		})

		convey.Convey("When using the wrong method", func() {
			rec := doRequest(mux, http.MethodGet, "/matches/refresh", "alice")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSuggestionsEndpoint(t *testing.T) {
	convey.Convey("Given the API routes", t, func() {
		mux := newTestMux(t)

		convey.Convey("When requesting suggestions", func() {
			rec := doRequest(mux, http.MethodGet, "/suggestions", "alice")

			convey.Convey("Then grouped candidates are returned", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				var body struct {
					Groups []types.SuggestionGroup `json:"groups"`
				}
				convey.So(json.Unmarshal(rec.Body.Bytes(), &body), convey.ShouldBeNil)
				convey.So(body.Groups, convey.ShouldHaveLength, 1)
				convey.So(body.Groups[0].Tag, convey.ShouldEqual, "go")
			})
		})

		convey.Convey("When the viewer header is missing", func() {
			rec := doRequest(mux, http.MethodGet, "/suggestions", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	convey.Convey("Given the API routes", t, func() {
		mux := newTestMux(t)

		convey.Convey("When checking health", func() {
			rec := doRequest(mux, http.MethodGet, "/healthz", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, `"status":"ok"`)
		})

		convey.Convey("When scraping metrics", func() {
			rec := doRequest(mux, http.MethodGet, "/metrics", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("When reading stats", func() {
			rec := doRequest(mux, http.MethodGet, "/stats", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, `"started":true`)
		})

		convey.Convey("When listing reward tiers", func() {
			rec := doRequest(mux, http.MethodGet, "/rewards", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

			var tiers []types.RewardTier
			convey.So(json.Unmarshal(rec.Body.Bytes(), &tiers), convey.ShouldBeNil)
			convey.So(tiers, convey.ShouldHaveLength, 4)
			convey.So(tiers[0].Badge, convey.ShouldEqual, "gold")
		})

		convey.Convey("When triggering a decay run", func() {
			rec := doRequest(mux, http.MethodPost, "/decay/run", "")
			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, `"updated":1`)
		})
	})
}
