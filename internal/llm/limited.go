package llm

import (
	"context"
	"fmt"
)

// Waiter blocks until a call for key may proceed.
type Waiter interface {
	Wait(ctx context.Context, key string) error
}

// LimitedProvider gates every Generate call on a shared limiter bucket.
type LimitedProvider struct {
	Provider
	limiter Waiter
	key     string
}

// WithLimit wraps p so each Generate waits on limiter's bucket for key.
// Returns p unchanged when p or limiter is nil.
func WithLimit(p Provider, limiter Waiter, key string) Provider {
	if p == nil || limiter == nil {
		return p
	}
	return &LimitedProvider{Provider: p, limiter: limiter, key: key}
}

// Generate waits for clearance then delegates
func (l *LimitedProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := l.limiter.Wait(ctx, l.key); err != nil {
		return nil, fmt.Errorf("rate limit %s: %w", l.key, err)
	}
	return l.Provider.Generate(ctx, req)
}
