package httpadapter

import (
	"encoding/json"
	"net/http"

	"rights-engine/internal/core/domain"
)

type setupRequest struct {
	Holder      string `json:"holder"`
	UnitPrice   int64  `json:"unit_price"`
	Currency    string `json:"currency"`
	MetadataURI string `json:"metadata_uri"`
}

// handleSetup configures a holder's package. Requires the authorizer
// role on the caller.
func (h *Handler) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	err := h.policy.Setup(r.Context(), callerFrom(r), domain.Package{
		Holder:      req.Holder,
		UnitPrice:   req.UnitPrice,
		Currency:    req.Currency,
		MetadataURI: req.MetadataURI,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type enforceRequest struct {
	Holder    string   `json:"holder"`
	TotalPaid int64    `json:"total_paid"`
	Currency  string   `json:"currency"`
	Parties   []string `json:"parties"`
	Broker    string   `json:"broker"`
	Payload   []byte   `json:"payload"`
}

type enforceResponse struct {
	AttestationIDs []int64 `json:"attestation_ids"`
}

// handleEnforce converts an agreement into licenses. Requires the
// manager role on the caller. A zero computed duration succeeds with an
// empty id list.
func (h *Handler) handleEnforce(w http.ResponseWriter, r *http.Request) {
	var req enforceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	ids, err := h.policy.Enforce(r.Context(), callerFrom(r), req.Holder, domain.Agreement{
		TotalPaid: req.TotalPaid,
		Currency:  req.Currency,
		Parties:   req.Parties,
		Broker:    req.Broker,
		Payload:   req.Payload,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, enforceResponse{AttestationIDs: ids})
}

// handleTerms resolves the holder from criteria query parameters and
// returns the package terms.
func (h *Handler) handleTerms(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFrom(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}
	terms, err := h.policy.ResolveTerms(r.Context(), criteria)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, struct {
		UnitPrice   int64  `json:"unit_price"`
		Currency    string `json:"currency"`
		Period      string `json:"period"`
		MetadataURI string `json:"metadata_uri"`
	}{terms.UnitPrice, terms.Currency, terms.Period, terms.MetadataURI})
}

// handleLicense returns the raw stored attestation id for an account,
// 0 meaning no license. No freshness check is done here.
func (h *Handler) handleLicense(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria, err := criteriaFrom(q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	id, err := h.policy.GetLicense(r.Context(), q.Get("account"), criteria)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, struct {
		AttestationID int64 `json:"attestation_id"`
	}{id})
}

// handleAccess reports whether the account currently holds a valid
// license for the holder selected by criteria.
func (h *Handler) handleAccess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria, err := criteriaFrom(q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	allowed, err := h.policy.IsAccessAllowed(r.Context(), q.Get("account"), criteria)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, struct {
		Allowed bool `json:"allowed"`
	}{allowed})
}
