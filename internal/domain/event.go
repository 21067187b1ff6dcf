package domain

import "time"

// Routing keys of published domain events
const (
	EventDepositApproved     = "deposit.approved"
	EventDepositRejected     = "deposit.rejected"
	EventWithdrawalApproved  = "withdrawal.approved"
	EventWithdrawalRejected  = "withdrawal.rejected"
	EventInvestmentActivated = "investment.activated"
	EventInvestmentClosed    = "investment.closed"
	EventProfitDistributed   = "profit.distributed"
)

// Event is a notification about a state change that already committed
type Event struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

// NewEvent stamps an event with the current time
func NewEvent(eventType string, payload map[string]interface{}) Event {
	return Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
