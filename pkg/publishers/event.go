package publishers

import (
	"time"

	"github.com/samvad-hq/assistly-go/internal/domain"
)

// EventCustomerDiscovered is emitted the first time a sync pass sees a customer.
const EventCustomerDiscovered = "customer.discovered"

// Event represents the payload published downstream.
type Event struct {
	Type     string          `json:"type"`
	Source   string          `json:"source"`
	Customer domain.Customer `json:"customer"`
	SyncedAt time.Time       `json:"synced_at"`
}

// NewEvent constructs a discovery Event for a customer read from source (the API base URL).
func NewEvent(source string, customer domain.Customer) Event {
	return Event{
		Type:     EventCustomerDiscovered,
		Source:   source,
		Customer: customer,
		SyncedAt: time.Now().UTC(),
	}
}

// attributes are the message attributes queue and topic publishers attach.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_type":  e.Type,
		"customer_id": e.Customer.ID,
	}
}
