// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/okian/agora/internal/batch/decay"
	"github.com/okian/agora/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Ranking reads.
	Rankings(ctx context.Context, q types.RankingQuery) (types.RankingPage, error)
	RewardTiers() []types.RewardTier

	// Matching reads.
	Matches(ctx context.Context, q types.MatchQuery) (types.MatchPage, error)
	RefreshMatches(ctx context.Context, viewerID string) error
	Suggestions(ctx context.Context, viewerID string) ([]types.SuggestionGroup, error)

	// Batch trigger.
	RunDecay(ctx context.Context) (decay.Report, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	rankingsHandler    *RankingsHandler
	rewardsHandler     *RewardsHandler
	matchesHandler     *MatchesHandler
	suggestionsHandler *SuggestionsHandler
	decayHandler       *DecayHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxPageSize int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		rankingsHandler:    NewRankingsHandler(deps, maxPageSize),
		rewardsHandler:     NewRewardsHandler(deps),
		matchesHandler:     NewMatchesHandler(deps, maxPageSize),
		suggestionsHandler: NewSuggestionsHandler(deps),
		decayHandler:       NewDecayHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/rewards", MetricsMiddleware(s.rewardsHandler.HandleGetRewards, "rewards"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleGetMatches, "matches"))
	mux.HandleFunc("/matches/refresh", MetricsMiddleware(s.matchesHandler.HandleRefresh, "matches_refresh"))
	mux.HandleFunc("/suggestions", MetricsMiddleware(s.suggestionsHandler.HandleGetSuggestions, "suggestions"))
	mux.HandleFunc("/decay/run", MetricsMiddleware(s.decayHandler.HandleRun, "decay_run"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
