package api

import (
	"context"
	"net/http"

	"github.com/okian/agora/internal/batch/decay"
)

// DecayDependencies defines the interface for the manual decay trigger.
type DecayDependencies interface {
	RunDecay(ctx context.Context) (decay.Report, error)
}

// DecayHandler triggers hotness decay runs on demand.
type DecayHandler struct {
	deps DecayDependencies
}

// NewDecayHandler creates a new decay handler.
func NewDecayHandler(deps DecayDependencies) *DecayHandler {
	return &DecayHandler{deps: deps}
}

// HandleRun handles POST /decay/run. The run is idempotent and safe to
// trigger at any time.
func (h *DecayHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	report, err := h.deps.RunDecay(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
