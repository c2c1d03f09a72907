package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type createCampaignRequest struct {
	TemplateID string `json:"template_id"`
	Policy     string `json:"policy"`
	// ExpirationOffset is a Go duration string, e.g. "720h". The
	// registry rejects anything under one hour.
	ExpirationOffset string `json:"expiration_offset"`
	Description      string `json:"description"`
}

// handleCreateCampaign instantiates a campaign from a template and
// binds it to the (caller, policy) scope.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	offset, err := time.ParseDuration(req.ExpirationOffset)
	if err != nil {
		http.Error(w, "invalid expiration_offset", http.StatusBadRequest)
		return
	}
	c, err := h.registry.CreateCampaign(r.Context(), callerFrom(r), req.TemplateID, req.Policy, offset, req.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(struct {
		ID        string    `json:"id"`
		Owner     string    `json:"owner"`
		ExpiresAt time.Time `json:"expires_at"`
	}{c.ID, c.Owner, c.ExpiresAt}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleCampaignLookup returns the campaign bound to (account, policy),
// 404 when the scope was never created.
func (h *Handler) handleCampaignLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := h.registry.GetCampaign(r.Context(), q.Get("account"), q.Get("policy"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if id == "" {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, struct {
		CampaignID string `json:"campaign_id"`
	}{id})
}
