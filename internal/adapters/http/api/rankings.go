package api

import (
	"context"
	"net/http"

	"github.com/okian/agora/internal/domain/types"
)

// RankingsDependencies defines the interface for ranking reads.
type RankingsDependencies interface {
	Rankings(ctx context.Context, q types.RankingQuery) (types.RankingPage, error)
}

// RankingsHandler handles ranking page requests.
type RankingsHandler struct {
	deps        RankingsDependencies
	maxPageSize int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingsDependencies, maxPageSize int) *RankingsHandler {
	return &RankingsHandler{deps: deps, maxPageSize: maxPageSize}
}

// HandleGetRankings handles GET /rankings?type=&period=&page=&page_size=.
// Validation rejects the request before any aggregation begins.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	scoreType, err := types.ParseScoreType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_score_type", err)
		return
	}
	period, err := types.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_period", err)
		return
	}
	page, err := queryInt(r, "page", defaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_page", types.ErrInvalidPage)
		return
	}
	pageSize, err := queryInt(r, "page_size", defaultPageSize)
	if err != nil || pageSize > h.maxPageSize {
		writeError(w, http.StatusBadRequest, "invalid_page_size", ErrBadRequest)
		return
	}

	resp, err := h.deps.Rankings(r.Context(), types.RankingQuery{
		ScoreType: scoreType,
		Period:    period,
		Page:      page,
		PageSize:  pageSize,
		ViewerID:  viewerID(r),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
