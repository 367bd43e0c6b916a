package httpadapter

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"simplymail/internal/core/domain"
)

// handleSchedule registers a future delivery. The console sends
// `newsletterId` and an RFC3339 `scheduledAt` as query parameters.
func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	campaignID, err := strconv.ParseInt(q.Get("newsletterId"), 10, 64)
	if err != nil || campaignID < 1 {
		h.writeError(w, fmt.Errorf("invalid newsletterId: %w", domain.ErrValidation))
		return
	}
	at, err := time.Parse(time.RFC3339, q.Get("scheduledAt"))
	if err != nil {
		h.writeError(w, fmt.Errorf("scheduledAt must be an RFC3339 timestamp: %w", domain.ErrValidation))
		return
	}
	s, err := h.schedules.Schedule(r.Context(), campaignID, at)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, s)
}

// handleListSchedules returns every schedule record.
func (h *Handler) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.schedules.ListAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, schedules)
}

// handleListSchedulesByCampaign returns the schedules of one newsletter.
func (h *Handler) handleListSchedulesByCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	schedules, err := h.schedules.ListByCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, schedules)
}

// handleCancelSchedule removes a pending schedule. A schedule that already
// fired or never existed reports 404 so the console can tell the user.
func (h *Handler) handleCancelSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.schedules.Cancel(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
