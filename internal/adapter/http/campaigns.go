package httpadapter

import (
	"encoding/json"
	"net/http"

	"simplymail/internal/core/port"
)

// handleCreateCampaign creates a draft newsletter.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in port.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c, err := h.campaigns.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

// handleUpdateCampaign edits a draft newsletter.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var in port.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c, err := h.campaigns.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

// handleDeleteCampaign removes a newsletter and everything hanging off it.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.campaigns.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListCampaigns returns all newsletters with their resolved statuses.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	views, err := h.campaigns.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

// handleGetCampaign returns one newsletter with its resolved status.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	view, err := h.campaigns.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// handleSendCampaign queues a newsletter for immediate delivery. 202 means
// the send was accepted; sentAt shows up on a later fetch once the
// dispatcher is done.
func (h *Handler) handleSendCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.campaigns.SendNow(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	if claims := sessionFrom(r.Context()); claims != nil {
		h.logger.Info("send triggered", "campaign_id", id, "by", claims.Email)
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"message": "newsletter sending started"})
}
