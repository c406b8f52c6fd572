// Package taskqueue serializes calls to rate-limited collaborators (the
// generative AI service, file storage). Tasks run one at a time, separated by
// an injected minimum interval, and rate-limit failures retry with
// exponential backoff.
package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// RateLimitError marks a failure as retryable under the backoff policy.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsRateLimit reports whether err marks a rate-limit failure.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Option configures a Queue.
type Option func(*Queue)

// WithRetries sets how many times a rate-limited task is retried.
func WithRetries(n int) Option {
	return func(q *Queue) { q.retries = n }
}

// WithBackoff replaces the delay policy for retry attempt i (0-based).
func WithBackoff(f func(attempt int) time.Duration) Option {
	return func(q *Queue) { q.backoff = f }
}

// Queue runs tasks strictly one at a time with a minimum interval between
// task starts. It replaces the ad-hoc "last API call time" global the page
// glue used to keep.
type Queue struct {
	minInterval time.Duration
	retries     int
	backoff     func(attempt int) time.Duration

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

// New builds a queue enforcing minInterval between task starts. The default
// policy retries rate-limited tasks 4 times with 1s, 2s, 4s, 8s delays.
func New(minInterval time.Duration, opts ...Option) *Queue {
	q := &Queue{
		minInterval: minInterval,
		retries:     4,
		backoff: func(attempt int) time.Duration {
			return time.Second << attempt
		},
		now:  time.Now,
		wait: sleepCtx,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Do runs fn under the queue's serialization and interval policy. Non
// rate-limit errors return immediately; rate-limit errors retry per the
// backoff policy and surface the last error once retries are exhausted.
func (q *Queue) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= q.retries; attempt++ {
		if attempt > 0 {
			if err := q.wait(ctx, q.backoff(attempt-1)); err != nil {
				return err
			}
		}
		if err := q.waitInterval(ctx); err != nil {
			return err
		}

		q.last = q.now()
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !IsRateLimit(err) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func (q *Queue) waitInterval(ctx context.Context) error {
	if q.minInterval <= 0 || q.last.IsZero() {
		return nil
	}
	elapsed := q.now().Sub(q.last)
	if elapsed >= q.minInterval {
		return nil
	}
	return q.wait(ctx, q.minInterval-elapsed)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
