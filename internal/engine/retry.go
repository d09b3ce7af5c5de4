package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryConfig controls retry behavior.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig suits page fetches: LinkedIn throttles hard, so waits grow quickly.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:  2,
	InitialWait: time.Second,
	MaxWait:     10 * time.Second,
	Multiplier:  3.0,
}

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// newBackOff builds the exponential schedule for rc. Zero fields keep the
// library defaults.
func (rc RetryConfig) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	if rc.InitialWait > 0 {
		bo.InitialInterval = rc.InitialWait
	}
	if rc.MaxWait > 0 {
		bo.MaxInterval = rc.MaxWait
	}
	if rc.Multiplier > 0 {
		bo.Multiplier = rc.Multiplier
	}
	return bo
}

// RetryDo runs fn with exponential backoff, at most MaxRetries+1 times.
// Only transient errors are retried; context cancellation stops immediately.
func RetryDo[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	operation := func() (T, error) {
		res, err := fn()
		if err != nil && !isRetryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}

	tries := uint(1)
	if rc.MaxRetries > 0 {
		tries += uint(rc.MaxRetries)
	}
	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(rc.newBackOff()),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			slog.Debug("retrying", slog.Duration("wait", wait), slog.Any("error", err))
		}),
	)
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	return res, err
}

// isRetryable returns true for transient errors worth retrying.
func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return IsRetryableStatus(statusErr.StatusCode)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
