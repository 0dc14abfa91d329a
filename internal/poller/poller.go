package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/samvad-hq/assistly-go/internal/domain"
	"github.com/samvad-hq/assistly-go/internal/logger"
	"github.com/samvad-hq/assistly-go/pkg/httpclient"
	"github.com/samvad-hq/assistly-go/pkg/publishers"
)

const (
	defaultPageSize = 50
	defaultMaxPages = 20

	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxElapsed      = 30 * time.Second
)

// Options tunes a sync pass.
type Options struct {
	PageSize int
	MaxPages int
	// Source is stamped on every event, usually the API base URL.
	Source string
	// NewBackOff returns the retry policy for a single page fetch.
	NewBackOff func() backoff.BackOff
}

// Result summarizes a sync pass.
type Result struct {
	Pages     int
	Listed    int
	Published int
	Cursor    string
}

// Service walks the customer listing and announces customers it has not seen.
type Service struct {
	lister    CustomerLister
	publisher EventPublisher
	store     SyncStore
	log       logger.Logger
	opts      Options
}

// NewService wires a poller with its lister, publisher, and state store.
func NewService(lister CustomerLister, pub EventPublisher, store SyncStore, log logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	if opts.NewBackOff == nil {
		opts.NewBackOff = defaultBackOff
	}
	return &Service{
		lister:    lister,
		publisher: pub,
		store:     store,
		log:       log,
		opts:      opts,
	}
}

func defaultBackOff() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = defaultInitialInterval
	exp.MaxElapsedTime = defaultMaxElapsed
	return exp
}

// Run executes one sync pass starting from the stored cursor.
func (s *Service) Run(ctx context.Context) (Result, error) {
	if s == nil || s.lister == nil || s.publisher == nil || s.store == nil {
		return Result{}, fmt.Errorf("poller service is not initialized")
	}

	cursor, err := s.store.Cursor()
	if err != nil {
		return Result{}, fmt.Errorf("read sync cursor: %w", err)
	}
	res := Result{Cursor: cursor}

	for res.Pages < s.opts.MaxPages {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		page, err := s.fetchPage(ctx, res.Cursor)
		if err != nil {
			return res, err
		}
		res.Pages++
		res.Listed += len(page)

		prev := res.Cursor
		next, published, pubErr := s.processPage(ctx, page, prev)
		res.Published += published
		if next != res.Cursor {
			if err := s.store.SetCursor(next); err != nil {
				return res, fmt.Errorf("store sync cursor: %w", err)
			}
			res.Cursor = next
		}
		if pubErr != nil {
			return res, pubErr
		}

		if len(page) < s.opts.PageSize {
			break
		}
		if next == prev {
			s.log.WarnObj("sync cursor did not advance on a full page, stopping pass", "sync_stalled", map[string]any{
				"since_id": prev,
				"listed":   len(page),
			})
			break
		}
	}

	s.log.InfoObj("customer sync pass completed", "sync_result", map[string]any{
		"pages":     res.Pages,
		"listed":    res.Listed,
		"published": res.Published,
		"cursor":    res.Cursor,
	})
	return res, nil
}

// fetchPage lists one page after sinceID, retrying transient failures.
func (s *Service) fetchPage(ctx context.Context, sinceID string) ([]httpclient.Value, error) {
	params := httpclient.Params{"count": s.opts.PageSize}
	if sinceID != "" {
		params["since_id"] = sinceID
	}

	op := func() (httpclient.Value, error) {
		v, err := s.lister.Customers(ctx, params)
		if err != nil && httpclient.IsClientError(err) && !httpclient.IsStatus(err, http.StatusTooManyRequests) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}
	notify := func(err error, wait time.Duration) {
		s.log.WarnObj("customer page fetch failed, retrying", "sync_retry", map[string]any{
			"since_id": sinceID,
			"wait_ms":  wait.Milliseconds(),
			"error":    err.Error(),
		})
	}

	body, err := backoff.RetryNotifyWithData(op, backoff.WithContext(s.opts.NewBackOff(), ctx), notify)
	if err != nil {
		return nil, fmt.Errorf("list customers since %q: %w", sinceID, err)
	}
	return body.Get("results.#.customer").Array(), nil
}

// processPage publishes unseen customers and returns the cursor to persist.
// The cursor stops short of the first customer that could not be published.
func (s *Service) processPage(ctx context.Context, page []httpclient.Value, cursor string) (string, int, error) {
	var errs []error
	published := 0
	next := cursor
	blocked := false

	for _, raw := range page {
		customer := toCustomer(raw)
		if customer.ID == "" {
			s.log.WarnObj("customer without id skipped", "customer_raw", raw.Raw())
			continue
		}

		if !s.seen(customer.ID) {
			if err := s.publish(ctx, customer); err != nil {
				errs = append(errs, err)
				blocked = true
				continue
			}
			published++
		}

		if !blocked {
			next = maxID(next, customer.ID)
		}
	}

	return next, published, errors.Join(errs...)
}

func (s *Service) seen(id string) bool {
	ok, err := s.store.SeenCustomer(id)
	if err != nil {
		s.log.WarnObj("customer lookup failed, treating as unseen", "storage_error", map[string]any{
			"customer_id": id,
			"error":       err.Error(),
		})
		return false
	}
	return ok
}

func (s *Service) publish(ctx context.Context, customer domain.Customer) error {
	evt := publishers.NewEvent(s.opts.Source, customer)
	if _, err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.ErrorObj("customer publish failed", "publish_error", map[string]any{
			"customer_id": customer.ID,
			"error":       err.Error(),
		})
		return fmt.Errorf("publish customer %s: %w", customer.ID, err)
	}
	if err := s.store.MarkCustomer(customer.ID); err != nil {
		s.log.WarnObj("customer mark failed", "storage_error", map[string]any{
			"customer_id": customer.ID,
			"error":       err.Error(),
		})
	}
	return nil
}

func toCustomer(v httpclient.Value) domain.Customer {
	name := strings.TrimSpace(v.Get("first_name").String() + " " + v.Get("last_name").String())
	if name == "" {
		name = v.Get("name").String()
	}
	return domain.Customer{
		ID:         v.Get("id").String(),
		Name:       name,
		Attributes: json.RawMessage(v.Raw()),
	}
}

// maxID keeps the larger of two decimal ids; non-numeric ids never move the cursor.
func maxID(current, candidate string) string {
	c, err := parseID(candidate)
	if err != nil {
		return current
	}
	if current == "" {
		return candidate
	}
	cur, err := parseID(current)
	if err != nil || c > cur {
		return candidate
	}
	return current
}

func parseID(id string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(id), 10, 64)
}
