package publishers

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/assistly-go/internal/logger"
)

type stubPublisher struct {
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

type closingPublisher struct {
	stubPublisher
}

func (c *closingPublisher) Close() error {
	c.closed = true
	return nil
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	failed := errors.New("failed")
	ok := &stubPublisher{id: "ok", typ: "http"}
	bad := &stubPublisher{id: "bad", typ: "http", err: failed}
	fanout := NewFanout([]Publisher{ok, nil, bad}, logger.NopLogger{})

	if fanout.Size() != 2 {
		t.Fatalf("nil publishers should be dropped, size=%d", fanout.Size())
	}

	count, err := fanout.Publish(context.Background(), testEvent())
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if !errors.Is(err, failed) {
		t.Fatalf("expected aggregated error, got %v", err)
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Fatalf("every publisher should be tried once, got %d/%d", ok.calls, bad.calls)
	}
}

func TestFanoutStopsOnCancelledContext(t *testing.T) {
	p := &stubPublisher{id: "ok", typ: "http"}
	fanout := NewFanout([]Publisher{p}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count, err := fanout.Publish(ctx, testEvent())
	if count != 0 || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got count=%d err=%v", count, err)
	}
	if p.calls != 0 {
		t.Fatalf("publisher should not be called after cancellation")
	}
}

func TestFanoutCloseClosesClosers(t *testing.T) {
	c := &closingPublisher{stubPublisher{id: "c", typ: "pubsub"}}
	fanout := NewFanout([]Publisher{c, &stubPublisher{id: "s"}}, nil)

	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !c.closed {
		t.Fatalf("closer publisher was not closed")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("expected 1 publisher, got %d", len(pubs))
	}
}

func TestBuildAllClosesBuiltPublishersOnFailure(t *testing.T) {
	built := &closingPublisher{stubPublisher{id: "first", typ: "stub"}}
	reg := NewRegistry(map[string]Builder{
		"stub": func(context.Context, PublisherConfig, logger.Logger) (Publisher, error) { return built, nil },
		"fail": func(context.Context, PublisherConfig, logger.Logger) (Publisher, error) {
			return nil, errors.New("cannot build")
		},
	})

	_, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "first", Type: "stub"},
		{ID: "second", Type: "fail"},
	}, nil)
	if err == nil {
		t.Fatalf("expected build error")
	}
	if !built.closed {
		t.Fatalf("already built publisher should be closed")
	}
}

func TestRegistryRejectsUnknownType(t *testing.T) {
	reg := NewRegistry(nil)
	if _, err := reg.PublisherFor(context.Background(), PublisherConfig{ID: "x", Type: "kafka"}, nil); err == nil {
		t.Fatalf("expected error for unregistered type")
	}
}
