package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps the sync state: customers already announced and the listing cursor.

// Store tracks announced customer IDs and the since_id cursor.
type Store interface {
	Close() error
	SeenCustomer(id string) (bool, error)
	MarkCustomer(id string) error
	Cursor() (string, error)
	SetCursor(sinceID string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	CustomerTTL     time.Duration
	CleanupInterval time.Duration
}

const (
	defaultCustomerTTL     = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.CustomerTTL <= 0 {
		opts.CustomerTTL = defaultCustomerTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                      { return nil }
func (noopStore) SeenCustomer(string) (bool, error) { return false, nil }
func (noopStore) MarkCustomer(string) error         { return nil }
func (noopStore) Cursor() (string, error)           { return "", nil }
func (noopStore) SetCursor(string) error            { return nil }
