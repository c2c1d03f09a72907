package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"rights-engine/internal/core/domain"
)

// callerFrom builds the caller identity from request headers. The
// account comes from X-Caller-Account, roles from the comma-separated
// X-Caller-Roles header. A fronting gateway is expected to authenticate
// and set these.
func callerFrom(r *http.Request) domain.Caller {
	caller := domain.Caller{Account: r.Header.Get("X-Caller-Account")}
	for _, role := range strings.Split(r.Header.Get("X-Caller-Roles"), ",") {
		role = strings.TrimSpace(role)
		if role != "" {
			caller.Roles = append(caller.Roles, domain.Role(role))
		}
	}
	return caller
}

// criteriaFrom parses the tagged criteria from query parameters:
// kind=holder&account_criteria=... or kind=asset&asset_id=N. The
// criteria account is named apart from the subject account that rides
// alongside it on license and access queries.
func criteriaFrom(q url.Values) (domain.Criteria, error) {
	c := domain.Criteria{
		Kind:    domain.CriteriaKind(q.Get("kind")),
		Account: q.Get("account_criteria"),
	}
	if raw := q.Get("asset_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c, domain.ErrInvalidInput
		}
		c.AssetID = id
	}
	return c, c.Validate()
}

// writeJSON encodes the response body; encoding failures are logged and
// otherwise dropped since the status line is already committed.
func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps the domain error taxonomy onto HTTP status codes.
// Validation problems are the caller's to fix; setup/state conflicts
// need an owner action; anything unrecognized is a 500 and gets logged.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, domain.ErrInvalidSetup),
		errors.Is(err, domain.ErrNotConfigured),
		errors.Is(err, domain.ErrInactiveCampaign):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnsupportedOperation):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
