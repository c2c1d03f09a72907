package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"rights-engine/internal/core/domain"
)

// newEvent builds an audit event with a fresh id. Payload marshalling
// of the flat event bodies used here cannot fail; a nil payload is
// stored for robustness if it ever does.
func newEvent(kind string, payload any) domain.Event {
	body, err := json.Marshal(payload)
	if err != nil {
		body = nil
	}
	return domain.Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Payload:   body,
		CreatedAt: time.Now().UTC(),
	}
}
