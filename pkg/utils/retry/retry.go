package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Policy controls retry behavior: bounded attempts with exponential backoff,
// a capped maximum delay and optional jitter
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Jitter    bool
}

// DefaultPolicy returns the policy used for tag pushes
func DefaultPolicy() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  8 * time.Second,
		Jitter:    true,
	}
}

// Do runs op until it succeeds or the policy's attempts are exhausted,
// sleeping with exponential backoff between attempts. The last error is
// returned on exhaustion. Cancellation of ctx aborts the wait between
// attempts.
func Do(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	logger := ctxlog.From(ctx)

	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = op(ctx); lastErr == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		delay := backoffDelay(policy, i)
		logger.Warn("operation failed, retrying",
			"attempt", i+1,
			"max_attempts", attempts,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "retry aborted", goerr.V("attempt", i+1))
		case <-time.After(delay):
		}
	}

	return goerr.Wrap(lastErr, "retry attempts exhausted", goerr.V("attempts", attempts))
}

// backoffDelay doubles the base delay per attempt, caps it at MaxDelay and
// optionally adds up to 50% jitter
func backoffDelay(policy Policy, attempt int) time.Duration {
	delay := policy.BaseDelay << uint(attempt)
	if policy.MaxDelay > 0 && delay > policy.MaxDelay {
		delay = policy.MaxDelay
	}
	if policy.Jitter && delay > 0 {
		delay += time.Duration(rand.Int63n(int64(delay)/2 + 1))
	}
	if policy.MaxDelay > 0 && delay > policy.MaxDelay {
		delay = policy.MaxDelay
	}
	return delay
}
