package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied idempotency keys so a retried
// command returns the original result instead of running twice.
type IdempotencyStore interface {
	// Claim reserves key for ttl. When the key was already claimed it returns
	// false together with the value recorded by Complete ("" while the first
	// request is still in flight).
	Claim(ctx context.Context, key string, ttl time.Duration) (claimed bool, existing string, err error)

	// Complete records the result reference for a claimed key
	Complete(ctx context.Context, key, value string, ttl time.Duration) error

	// Release drops a claim after the command failed so the client may retry
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a key is remembered. Default: 24 hours
	TTL time.Duration

	// LockTTL bounds an in-flight claim so a crashed request does not block
	// retries for the full TTL. Default: 30 seconds
	LockTTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		LockTTL: 30 * time.Second,
		Enabled: true,
	}
}

// ClaimTTL is the lifetime of an in-flight claim: LockTTL, or TTL when unset
func (c IdempotencyConfig) ClaimTTL() time.Duration {
	if c.LockTTL > 0 {
		return c.LockTTL
	}
	return c.TTL
}
