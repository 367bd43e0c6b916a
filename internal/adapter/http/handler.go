package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"simplymail/internal/core/port"
)

// Handler is the inbound HTTP adapter. It holds the usecases, a structured
// logger and the session secret for the bearer middleware, and registers
// all routes on a chi.Router.
type Handler struct {
	campaigns   port.CampaignUseCase
	schedules   port.ScheduleUseCase
	analytics   port.AnalyticsUseCase
	subscribers port.SubscriberUseCase
	auth        port.AuthUseCase
	deliveries  port.DeliveryRepository
	logger      *slog.Logger
	authSecret  string
	router      chi.Router
}

// NewHandler creates a handler with all routes configured. Admin routes sit
// behind the bearer middleware; subscribe, unsubscribe, the tracking pixel
// and the auth endpoints stay public.
func NewHandler(
	campaigns port.CampaignUseCase,
	schedules port.ScheduleUseCase,
	analytics port.AnalyticsUseCase,
	subscribers port.SubscriberUseCase,
	auth port.AuthUseCase,
	deliveries port.DeliveryRepository,
	logger *slog.Logger,
	authSecret string,
) *Handler {
	h := &Handler{
		campaigns:   campaigns,
		schedules:   schedules,
		analytics:   analytics,
		subscribers: subscribers,
		auth:        auth,
		deliveries:  deliveries,
		logger:      logger,
		authSecret:  authSecret,
	}
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Post("/subscribers/subscribe", h.handleSubscribe)
		r.Get("/subscribers/unsubscribe", h.handleUnsubscribe)
		r.Get("/track/open/{token}", h.handleTrackOpen)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Get("/subscribers/all", h.handleListSubscribers)
			r.Get("/subscribers/count", h.handleSubscriberCounts)
			r.Delete("/subscribers/{id}", h.handleDeleteSubscriber)

			r.Post("/newsletters/create", h.handleCreateCampaign)
			r.Put("/newsletters/update/{id}", h.handleUpdateCampaign)
			r.Delete("/newsletters/delete/{id}", h.handleDeleteCampaign)
			r.Get("/newsletters/all", h.handleListCampaigns)
			r.Get("/newsletters/{id}", h.handleGetCampaign)
			r.Post("/newsletters/send/{id}", h.handleSendCampaign)

			r.Post("/scheduling/schedule", h.handleSchedule)
			r.Get("/scheduling/all", h.handleListSchedules)
			r.Get("/scheduling/newsletter/{id}", h.handleListSchedulesByCampaign)
			r.Delete("/scheduling/cancel/{id}", h.handleCancelSchedule)

			r.Get("/analytics/dashboard", h.handleDashboard)
			r.Get("/analytics/{id}", h.handleCampaignAnalytics)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
