package httpadapter

import (
	"net/http"
)

// handleSubscribe adds an email to the list. The public site posts a form
// with a single `email` field.
func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
	}
	s, err := h.subscribers.Subscribe(r.Context(), r.FormValue("email"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, s)
}

// handleUnsubscribe flips a subscriber inactive. Reached from the
// unsubscribe link in every newsletter, so it is a GET with a query param.
func (h *Handler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := h.subscribers.Unsubscribe(r.Context(), r.URL.Query().Get("email")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "unsubscribed"})
}

// handleListSubscribers returns every subscriber record.
func (h *Handler) handleListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscribers.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, subs)
}

// handleSubscriberCounts returns the dashboard counts.
func (h *Handler) handleSubscriberCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.subscribers.Counts(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, counts)
}

// handleDeleteSubscriber removes a subscriber record entirely.
func (h *Handler) handleDeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.subscribers.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
