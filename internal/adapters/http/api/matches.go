package api

import (
	"context"
	"net/http"

	"github.com/okian/agora/internal/domain/types"
)

// MatchesDependencies defines the interface for matching operations.
type MatchesDependencies interface {
	Matches(ctx context.Context, q types.MatchQuery) (types.MatchPage, error)
	RefreshMatches(ctx context.Context, viewerID string) error
}

// MatchesHandler handles matching reads and refresh triggers.
type MatchesHandler struct {
	deps        MatchesDependencies
	maxPageSize int
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchesDependencies, maxPageSize int) *MatchesHandler {
	return &MatchesHandler{deps: deps, maxPageSize: maxPageSize}
}

// HandleGetMatches handles GET /matches?type=&page=&page_size=&min_score=.
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	viewer := viewerID(r)
	if viewer == "" {
		writeError(w, http.StatusBadRequest, "missing_viewer", ErrMissingViewer)
		return
	}
	matchType, err := types.ParseMatchType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_match_type", err)
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
	minScore, err := queryFloat(r, "min_score")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_min_score", ErrBadRequest)
		return
	}

	resp, err := h.deps.Matches(r.Context(), types.MatchQuery{
		ViewerID: viewer,
		Type:     matchType,
		Page:     page,
		PageSize: pageSize,
		MinScore: minScore,
	})
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type refreshResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
}

// HandleRefresh handles POST /matches/refresh. Acknowledgement only; the
// next matching read recomputes from live counters.
func (h *MatchesHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	viewer := viewerID(r)
	if viewer == "" {
		writeError(w, http.StatusBadRequest, "missing_viewer", ErrMissingViewer)
		return
	}
	if err := h.deps.RefreshMatches(r.Context(), viewer); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	writeJSON(w, http.StatusAccepted, refreshResponse{
		Status:    "accepted",
		RequestID: requestIDFromContext(r.Context()),
	})
}
