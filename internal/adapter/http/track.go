package httpadapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// 1x1 transparent GIF served from the tracking endpoint.
var trackingPixel = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// handleTrackOpen records the first open of a delivery and serves the pixel.
// The pixel is always served, even for unknown or repeated tokens, so mail
// clients never see a broken image.
func (h *Handler) handleTrackOpen(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token != "" {
		opened, err := h.deliveries.MarkOpened(r.Context(), token, time.Now().UTC())
		if err != nil {
			h.logger.Error("recording open", "token", token, "error", err)
		} else if opened {
			h.logger.Debug("open recorded", "token", token)
		}
	}
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(trackingPixel)
}
