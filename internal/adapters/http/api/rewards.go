package api

import (
	"net/http"

	"github.com/okian/agora/internal/domain/types"
)

// RewardTier mirrors the read shape of the reward ladder.
type RewardTier = types.RewardTier

// RewardsDependencies defines the interface for the reward-tier lookup.
type RewardsDependencies interface {
	RewardTiers() []RewardTier
}

// RewardsHandler serves the static reward ladder.
type RewardsHandler struct {
	deps RewardsDependencies
}

// NewRewardsHandler creates a new rewards handler.
func NewRewardsHandler(deps RewardsDependencies) *RewardsHandler {
	return &RewardsHandler{deps: deps}
}

// HandleGetRewards handles GET /rewards.
func (h *RewardsHandler) HandleGetRewards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.RewardTiers())
}
