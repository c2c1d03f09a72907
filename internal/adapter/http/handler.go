package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rights-engine/internal/core/port"
)

// Handler contains dependencies and routes. It is the inbound HTTP
// adapter: it holds the three usecases and a logger, and registers one
// route per engine operation on a chi.Router.
type Handler struct {
	policy   port.PolicyUseCase
	campaign port.CampaignUseCase
	registry port.RegistryUseCase
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(policy port.PolicyUseCase, campaign port.CampaignUseCase, registry port.RegistryUseCase, logger *slog.Logger) *Handler {
	h := &Handler{policy: policy, campaign: campaign, registry: registry, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/policy", func(r chi.Router) {
			r.Post("/packages", h.handleSetup)
			r.Post("/enforce", h.handleEnforce)
			r.Get("/terms", h.handleTerms)
			r.Get("/license", h.handleLicense)
			r.Get("/access", h.handleAccess)
		})
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/lookup", h.handleCampaignLookup)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleCampaignGet)
				r.Get("/active", h.handleCampaignActive)
				r.Post("/funds", h.handleAddFunds)
				r.Delete("/funds", h.handleRemoveFunds)
				r.Post("/quota", h.handleSetQuota)
				r.Post("/allocation", h.handleSetAllocation)
				r.Post("/run", h.handleRun)
				r.Post("/pause", h.handlePause)
				r.Post("/unpause", h.handleUnpause)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
