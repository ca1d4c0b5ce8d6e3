package explanation

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"tutor-onboarding/internal/common/errors"
	"tutor-onboarding/internal/common/logger"
	"tutor-onboarding/internal/common/metrics"
	"tutor-onboarding/internal/models"
)

// Status is the fetch state of one candidate's AI explanation.
type Status string

const (
	StatusNotFetched Status = "NOT_FETCHED"
	StatusLoading    Status = "LOADING"
	StatusLoaded     Status = "LOADED"
	StatusError      Status = "ERROR"
)

// ErrClosed is returned by Fetch once the cache has been closed.
var ErrClosed = stderrors.New("explanation cache closed")

// Fetcher calls the on-demand AI explanation service.
type Fetcher interface {
	Explain(ctx context.Context, req models.ExplanationRequest) (*models.ExplanationResponse, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req models.ExplanationRequest) (*models.ExplanationResponse, error)

func (f FetcherFunc) Explain(ctx context.Context, req models.ExplanationRequest) (*models.ExplanationResponse, error) {
	return f(ctx, req)
}

// Target identifies the pair being explained and its normalized score.
type Target struct {
	SourceID string
	TargetID string
	Score    float64
}

// State is a point-in-time view of a cache.
type State struct {
	Status   Status
	Value    *string
	Expanded bool
}

// Cache guards the AI explanation of a single displayed candidate. At most one
// fetch is in flight, and a loaded explanation is never fetched again.
// Caches are never shared between candidates.
type Cache struct {
	target      Target
	synthesized string
	fetcher     Fetcher
	reporter    *errors.Reporter
	logger      logger.Logger
	timeout     time.Duration

	mu       sync.Mutex
	status   Status
	value    *string
	expanded bool
	cancel   context.CancelFunc
	closed   bool
}

// NewCache builds a cache for target. synthesized is the rule-based
// explanation shown until an AI explanation is loaded.
func NewCache(target Target, synthesized string, fetcher Fetcher, reporter *errors.Reporter, log logger.Logger, timeout time.Duration) *Cache {
	return &Cache{
		target:      target,
		synthesized: synthesized,
		fetcher:     fetcher,
		reporter:    reporter,
		logger: logger.ForComponent(log, "explanation-cache").WithFields(map[string]interface{}{
			"targetId": target.TargetID,
		}),
		timeout: timeout,
		status:  StatusNotFetched,
	}
}

// State returns a copy of the cache state for rendering.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{Status: c.status, Expanded: c.expanded}
	if c.value != nil {
		v := *c.value
		st.Value = &v
	}
	return st
}

func (c *Cache) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Explanation returns the text to display: the AI explanation once loaded,
// the synthesized one otherwise.
func (c *Cache) Explanation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value != nil {
		return *c.value
	}
	return c.synthesized
}

func (c *Cache) Expanded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded
}

// ToggleExpand flips the panel without any network call. When expanding with
// nothing to show it reports that the caller should Fetch.
func (c *Cache) ToggleExpand() (needsFetch bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expanded {
		c.expanded = false
		return false
	}
	c.expanded = true
	if c.value != nil || c.synthesized != "" {
		return false
	}
	return c.status == StatusNotFetched || c.status == StatusError
}

// Fetch loads the AI explanation. It is a no-op while a fetch is in flight or
// once loaded. On failure the cache moves to ERROR, the panel collapses and the
// error is reported; a later Fetch retries.
func (c *Cache) Fetch(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.status == StatusLoading || c.status == StatusLoaded {
		c.mu.Unlock()
		return nil
	}
	c.status = StatusLoading
	var fetchCtx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		fetchCtx, cancel = context.WithCancel(ctx)
	}
	c.cancel = cancel
	c.mu.Unlock()

	metrics.ExplanationFetchesActive.Inc()
	resp, err := c.fetcher.Explain(fetchCtx, models.ExplanationRequest{
		SourceID: c.target.SourceID,
		TargetID: c.target.TargetID,
		Score:    c.target.Score,
	})
	metrics.ExplanationFetchesActive.Dec()
	fetchErr := fetchCtx.Err()
	cancel()

	if err == nil && (resp == nil || strings.TrimSpace(resp.Explanation) == "") {
		err = stderrors.New("empty explanation")
	}

	c.mu.Lock()
	c.cancel = nil
	if c.closed {
		c.mu.Unlock()
		metrics.ExplanationFetches.WithLabelValues(metrics.OutcomeDiscarded).Inc()
		c.logger.Debug("discarded explanation for closed view", nil)
		return ErrClosed
	}
	if err != nil {
		c.status = StatusError
		c.expanded = false
		c.mu.Unlock()
		metrics.ExplanationFetches.WithLabelValues(metrics.OutcomeFailed).Inc()
		return c.fail(ctx, err, fetchErr)
	}
	text := resp.Explanation
	c.value = &text
	c.status = StatusLoaded
	c.expanded = true
	c.mu.Unlock()

	metrics.ExplanationFetches.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.logger.Debug("explanation loaded", map[string]interface{}{"length": len(text)})
	return nil
}

func (c *Cache) fail(ctx context.Context, err, fetchErr error) error {
	if ctx.Err() != nil {
		// The caller gave up; leave it to them.
		return err
	}
	var stdErr *errors.StandardError
	if stderrors.Is(fetchErr, context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		stdErr = errors.NewExplanationTimeoutError(c.target.TargetID, err)
	} else {
		stdErr = errors.NewExplanationFetchFailedError(c.target.TargetID, err)
	}
	if c.reporter != nil {
		c.reporter.Report(ctx, "explanation.fetch", stdErr)
	}
	return stdErr
}

// Close cancels any in-flight fetch. Results arriving afterwards are dropped
// and further fetches are refused.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
