package httpadapter

import (
	"net/http"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

type dashboardResponse struct {
	port.DashboardAnalytics
	LatestSent *domain.Campaign `json:"latestSent"`
}

// handleDashboard returns the fleet-wide snapshot plus the most recently
// sent newsletter, which the console preselects in its detail view.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	latest, err := h.analytics.LatestSent(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dashboardResponse{DashboardAnalytics: *stats, LatestSent: latest})
}

// handleCampaignAnalytics returns the per-newsletter open stats.
func (h *Handler) handleCampaignAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	stats, err := h.analytics.Campaign(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
