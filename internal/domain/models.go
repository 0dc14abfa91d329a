package domain

import "encoding/json"

// Customer is a customer record picked up by a sync pass. Attributes holds the
// customer object exactly as the API returned it.
type Customer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name,omitempty"`
	Attributes json.RawMessage `json:"attributes"`
}
