package domain

import "time"

// Event kinds written to the audit log. Field layout of each payload is
// part of the public contract.
const (
	EventSubscriptionEnforced = "SubscriptionEnforced"
	EventCampaignRun          = "CampaignRun"
	EventFundsAdded           = "FundsAdded"
	EventFundsRemoved         = "FundsRemoved"
	EventMaxQuotaLimitSet     = "MaxQuotaLimitSet"
	EventCampaignRegistered   = "CampaignRegistered"
)

// Event is one audit record. Payload is the JSON-encoded event body;
// writes happen inside the same transaction as the state change they
// describe, so the log never records an aborted operation.
type Event struct {
	ID        string
	Kind      string
	Payload   []byte
	CreatedAt time.Time
}
