package api

import (
	"context"
	"net/http"

	"github.com/okian/agora/internal/domain/types"
)

// SuggestionsDependencies defines the interface for suggestion reads.
type SuggestionsDependencies interface {
	Suggestions(ctx context.Context, viewerID string) ([]types.SuggestionGroup, error)
}

// SuggestionsHandler handles discovery cluster requests.
type SuggestionsHandler struct {
	deps SuggestionsDependencies
}

// NewSuggestionsHandler creates a new suggestions handler.
func NewSuggestionsHandler(deps SuggestionsDependencies) *SuggestionsHandler {
	return &SuggestionsHandler{deps: deps}
}

type suggestionsResponse struct {
	Groups []types.SuggestionGroup `json:"groups"`
}

// HandleGetSuggestions handles GET /suggestions.
func (h *SuggestionsHandler) HandleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	viewer := viewerID(r)
	if viewer == "" {
		writeError(w, http.StatusBadRequest, "missing_viewer", ErrMissingViewer)
		return
	}
	groups, err := h.deps.Suggestions(r.Context(), viewer)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Groups: groups})
}
