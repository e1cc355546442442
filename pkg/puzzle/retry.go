package puzzle

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how hard a single source is tried before the caller
// moves on to the next one.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	Timeout   time.Duration // per attempt; zero leaves the context alone
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:  3,
		BaseDelay: 500 * time.Millisecond,
		Timeout:   10 * time.Second,
	}
}

// Do runs op until it succeeds, returns a non-retryable error, the attempts
// run out, or ctx is done.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	base := p.BaseDelay
	if base <= 0 {
		base = 500 * time.Millisecond
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = base
	exp.MaxInterval = 16 * base
	exp.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)

	return backoff.Retry(func() error {
		attemptCtx, cancel := ctx, context.CancelFunc(func() {})
		if p.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		defer cancel()

		err := op(attemptCtx)
		if err != nil && !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

// Retryable reports whether err may go away on a repeat of the same request.
func Retryable(err error) bool {
	if errors.Is(err, ErrMalformed) || errors.Is(err, ErrNotPublished) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
