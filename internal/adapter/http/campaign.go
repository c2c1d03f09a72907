package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// handleCampaignGet returns campaign state for inspection.
func (h *Handler) handleCampaignGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaign.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, struct {
		ID          string    `json:"id"`
		Owner       string    `json:"owner"`
		Policy      string    `json:"policy"`
		Currency    string    `json:"currency"`
		Description string    `json:"description"`
		ExpiresAt   time.Time `json:"expires_at"`
		QuotaLimit  int64     `json:"quota_limit"`
		Balance     int64     `json:"balance"`
		Paused      bool      `json:"paused"`
	}{c.ID, c.Owner, c.Policy, c.Currency, c.Description, c.ExpiresAt, c.QuotaLimit, c.Balance, c.Paused})
}

// handleAddFunds collects funds from the owner into the pool.
func (h *Handler) handleAddFunds(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.campaign.AddFunds(r.Context(), callerFrom(r), chi.URLParam(r, "id"), req.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRemoveFunds pays funds from the pool back to the owner.
func (h *Handler) handleRemoveFunds(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.campaign.RemoveFunds(r.Context(), callerFrom(r), chi.URLParam(r, "id"), req.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetQuota sets the per-account usage limit.
func (h *Handler) handleSetQuota(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Limit int64 `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.campaign.SetQuotaLimit(r.Context(), callerFrom(r), chi.URLParam(r, "id"), req.Limit); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetAllocation sets an operator's per-run spend.
func (h *Handler) handleSetAllocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Operator string `json:"operator"`
		Amount   int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.campaign.SetFundsAllocation(r.Context(), callerFrom(r), chi.URLParam(r, "id"), req.Operator, req.Amount); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRun executes one sponsored access. The caller is the operator;
// the sponsored account comes from the body.
func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Account string `json:"account"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.campaign.Run(r.Context(), callerFrom(r), chi.URLParam(r, "id"), req.Account); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCampaignActive evaluates the run precondition read-only.
func (h *Handler) handleCampaignActive(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	active, err := h.campaign.IsActive(r.Context(), chi.URLParam(r, "id"), q.Get("operator"), q.Get("account"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, struct {
		Active bool `json:"active"`
	}{active})
}

// handlePause stops all runs until unpaused.
func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	if err := h.campaign.Pause(r.Context(), callerFrom(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUnpause lifts the pause flag.
func (h *Handler) handleUnpause(w http.ResponseWriter, r *http.Request) {
	if err := h.campaign.Unpause(r.Context(), callerFrom(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
