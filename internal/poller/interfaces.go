package poller

import (
	"context"

	"github.com/samvad-hq/assistly-go/pkg/httpclient"
	"github.com/samvad-hq/assistly-go/pkg/publishers"
)

// CustomerLister pages through the customer listing.
type CustomerLister interface {
	Customers(ctx context.Context, filters httpclient.Params) (httpclient.Value, error)
}

// EventPublisher publishes customer events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// SyncStore remembers announced customers and where the listing left off.
type SyncStore interface {
	SeenCustomer(id string) (bool, error)
	MarkCustomer(id string) error
	Cursor() (string, error)
	SetCursor(sinceID string) error
}
