package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/assistly-go/internal/config"
	"github.com/samvad-hq/assistly-go/internal/logger"
	"github.com/samvad-hq/assistly-go/internal/poller"
	"github.com/samvad-hq/assistly-go/internal/storage"
	"github.com/samvad-hq/assistly-go/pkg/publishers"
)

// passRunner executes a single sync pass.
type passRunner interface {
	Run(ctx context.Context) (poller.Result, error)
}

// Syncer is the customer sync runtime. It owns the poll loop, the publishers
// fanout, and the state store, and releases them when the loop ends.
type Syncer struct {
	poller   passRunner
	fanout   *publishers.Fanout
	store    storage.Store
	interval time.Duration
	log      logger.Logger
}

// NewSyncer builds a sync runtime from config files.
func NewSyncer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Syncer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	resource, err := NewCustomerResource(cfg, log)
	if err != nil {
		return nil, err
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients, log)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	storeOpts := storage.Options{
		CustomerTTL:     cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"customer_ttl_seconds":     int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	svc := poller.NewService(resource, fanout, store, log, poller.Options{
		PageSize: cfg.SyncPageSize,
		MaxPages: cfg.SyncMaxPages,
		Source:   cfg.APIBaseURL(),
	})

	return &Syncer{
		poller:   svc,
		fanout:   fanout,
		store:    store,
		interval: cfg.SyncInterval,
		log:      log,
	}, nil
}

// Run performs an initial pass and then one pass per interval until the context is cancelled.
func (s *Syncer) Run(ctx context.Context) error {
	if s == nil || s.poller == nil {
		return fmt.Errorf("syncer is not initialized")
	}
	defer s.Close()

	s.log.InfoObj("sync loop starting", "sync_state", map[string]any{
		"publishers_count": s.fanout.Size(),
		"sync_interval":    s.interval.String(),
	})

	if err := s.runOnce(ctx); err != nil {
		s.log.ErrorObj("initial sync failed", "error", err.Error())
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.InfoObj("sync loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := s.runOnce(ctx); err != nil {
				s.log.ErrorObj("scheduled sync failed", "error", err.Error())
			}
		}
	}
}

// RunOnce performs a single pass and releases resources.
func (s *Syncer) RunOnce(ctx context.Context) error {
	if s == nil || s.poller == nil {
		return fmt.Errorf("syncer is not initialized")
	}
	defer s.Close()
	return s.runOnce(ctx)
}

func (s *Syncer) runOnce(ctx context.Context) error {
	start := time.Now()
	s.log.InfoObj("sync started", "sync_meta", map[string]any{
		"started_at": start.UTC(),
	})
	res, err := s.poller.Run(ctx)
	if err != nil {
		return fmt.Errorf("sync pass: %w", err)
	}
	s.log.InfoObj("sync completed", "sync_meta", map[string]any{
		"pages":      res.Pages,
		"published":  res.Published,
		"cursor":     res.Cursor,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// Close releases the store and publisher clients. It is safe to call more than once.
func (s *Syncer) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.ErrorObj("storage close failed", "error", err.Error())
			errs = append(errs, err)
		}
		s.store = nil
	}
	if s.fanout != nil {
		if err := s.fanout.Close(); err != nil {
			s.log.ErrorObj("publishers close failed", "error", err.Error())
			errs = append(errs, err)
		}
		s.fanout = nil
	}
	return errors.Join(errs...)
}
