package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/vittamlabs/origination/internal/domain/port"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

// retryConfig bounds collaborator calls: each attempt runs under its own
// timeout, failures back off exponentially with jitter, and the final failure
// surfaces as a CollaboratorError.
type retryConfig struct {
	Attempts    int
	Timeout     time.Duration
	BaseBackoff time.Duration
}

func defaultRetryConfig() retryConfig {
	return retryConfig{
		Attempts:    3,
		Timeout:     5 * time.Second,
		BaseBackoff: 200 * time.Millisecond,
	}
}

// callCollaborator invokes fn with bounded retries. A not-found from either
// directory is a definitive answer, not an outage, and returns immediately.
func callCollaborator[T any](ctx context.Context, name string, cfg retryConfig, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		if attempt > 0 {
			backoff := cfg.BaseBackoff * (1 << (attempt - 1))
			var jitter time.Duration
			if cfg.BaseBackoff > 0 {
				jitter = time.Duration(rand.Int63n(int64(cfg.BaseBackoff)))
			}
			select {
			case <-time.After(backoff + jitter):
			case <-ctx.Done():
				return zero, &valueobject.CollaboratorError{Collaborator: name, Err: ctx.Err()}
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		out, err := fn(attemptCtx)
		cancel()
		if err == nil {
			return out, nil
		}
		if errors.Is(err, port.ErrKYCNotFound) || errors.Is(err, port.ErrProfileNotFound) {
			return zero, err
		}
		lastErr = err
	}

	return zero, &valueobject.CollaboratorError{Collaborator: name, Err: lastErr}
}
