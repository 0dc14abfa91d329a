package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/assistly-go/internal/config"
	"github.com/samvad-hq/assistly-go/internal/logger"
	"github.com/samvad-hq/assistly-go/internal/poller"
	"github.com/samvad-hq/assistly-go/pkg/publishers"
)

type countingRunner struct {
	mu     sync.Mutex
	calls  int
	err    error
	cancel context.CancelFunc
	stopAt int
}

func (c *countingRunner) Run(context.Context) (poller.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.stopAt > 0 && c.calls >= c.stopAt && c.cancel != nil {
		c.cancel()
	}
	return poller.Result{Pages: 1}, c.err
}

func TestSyncerRunLoopsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runner := &countingRunner{cancel: cancel, stopAt: 3, err: errors.New("transient")}
	s := &Syncer{poller: runner, interval: 5 * time.Millisecond, log: logger.NopLogger{}}

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runner.calls < 3 {
		t.Fatalf("expected at least 3 passes, got %d", runner.calls)
	}
	if ctx.Err() != context.Canceled {
		t.Fatalf("loop should stop on cancellation, got %v", ctx.Err())
	}
}

func TestSyncerRunOnceReturnsPassError(t *testing.T) {
	boom := errors.New("boom")
	s := &Syncer{poller: &countingRunner{err: boom}, log: logger.NopLogger{}}

	if err := s.RunOnce(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected pass error, got %v", err)
	}
}

func TestNilSyncer(t *testing.T) {
	var s *Syncer
	if err := s.Run(context.Background()); err == nil {
		t.Fatalf("expected error for nil syncer")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close on nil syncer: %v", err)
	}
}

func TestSyncerEndToEndPublishesToWebhook(t *testing.T) {
	var (
		mu       sync.Mutex
		received []publishers.Event
	)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			t.Errorf("decode webhook body: %v", err)
		}
		mu.Lock()
		received = append(received, evt)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hook.Close()

	snapshot := func() []publishers.Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]publishers.Event(nil), received...)
	}

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customers.json" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("count") != "2" {
			t.Errorf("unexpected count %q", r.URL.Query().Get("count"))
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("since_id") == "" {
			_, _ = w.Write([]byte(`{"success":true,"results":[{"customer":{"id":1,"first_name":"Ada"}},{"customer":{"id":2,"first_name":"Grace"}}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"results":[]}`))
	}))
	defer api.Close()

	dir := t.TempDir()
	pubFile := filepath.Join(dir, "publishers.yaml")
	raw := "publishers:\n  - id: hook\n    type: http\n    http:\n      url: " + hook.URL + "\n"
	if err := os.WriteFile(pubFile, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}

	cfg := &config.Config{
		BaseURL:                api.URL,
		Format:                 "json",
		AuthMode:               "none",
		HTTPTimeout:            2 * time.Second,
		PublishersFile:         pubFile,
		SyncInterval:           time.Minute,
		SyncPageSize:           2,
		SyncMaxPages:           5,
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(dir, "sync.db"),
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}

	s, err := NewSyncer(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewSyncer: %v", err)
	}
	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	events := snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 webhook deliveries, got %d", len(events))
	}
	if events[0].Customer.ID != "1" || events[1].Customer.Name != "Grace" {
		t.Fatalf("unexpected events %#v", events)
	}
	if events[0].Source != api.URL {
		t.Fatalf("event source = %q", events[0].Source)
	}

	// A second run over the same store announces nothing new.
	again, err := NewSyncer(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewSyncer (second run): %v", err)
	}
	if err := again.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce (second run): %v", err)
	}
	if n := len(snapshot()); n != 2 {
		t.Fatalf("second run should not republish, got %d deliveries", n)
	}
}

func TestNewSyncerRequiresPublishers(t *testing.T) {
	cfg := &config.Config{
		BaseURL:        "https://acme.assistly.com/api/v1",
		AuthMode:       "none",
		PublishersFile: filepath.Join(t.TempDir(), "missing.yaml"),
	}
	if _, err := NewSyncer(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for missing publishers file")
	}
}
