package resilience

import "time"

// Breaker defaults, shared by the env loader and NewCircuitBreaker.
const (
	DefaultFailureThreshold = 5
	DefaultOpenTimeout      = 15 * time.Second
	DefaultHalfOpenMaxReq   = 2
)

type CircuitBreakerConfig struct {
	Enabled bool
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold int
	OpenTimeout      time.Duration
	// HalfOpenMaxReq trial calls are admitted once OpenTimeout has elapsed.
	HalfOpenMaxReq int
}

// withDefaults replaces unset or out-of-range fields.
func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = DefaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = DefaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = DefaultHalfOpenMaxReq
	}
	return c
}
