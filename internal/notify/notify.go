package notify

import (
	"best-offer/utils"
)

// Event is a negotiation outcome emitted to the notification dispatcher.
// Key is an idempotency hash so downstream delivery can deduplicate
// retries, e.g. "offer:5f3a:accepted".
type Event struct {
	Key       string
	Type      string
	OfferID   string
	ListingID string
	Recipient string
	Amount    float64
}

// Notifier dispatches negotiation events to buyers and sellers.
// Implementations are fire-and-forget collaborators: the engine logs and
// swallows their failures, since the offer state change already committed.
type Notifier interface {
	Notify(event Event) error
}

// Auditor appends negotiation actions to an audit sink.
type Auditor interface {
	Record(action string, fields map[string]any) error
}

// LogNotifier writes events to the structured log. Production deployments
// swap in a push/email dispatcher.
type LogNotifier struct{}

func (LogNotifier) Notify(event Event) error {
	utils.Info("notification event", map[string]any{
		"key":        event.Key,
		"type":       event.Type,
		"offer_id":   event.OfferID,
		"listing_id": event.ListingID,
		"recipient":  event.Recipient,
		"amount":     event.Amount,
	})
	return nil
}

// LogAuditor writes audit entries to the structured log.
type LogAuditor struct{}

func (LogAuditor) Record(action string, fields map[string]any) error {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["audit_action"] = action
	utils.Info("audit", fields)
	return nil
}
