package ratelimiter

import "time"

// Config describes a token bucket.
type Config struct {
	Capacity       int           // burst size
	RefillRate     int           // tokens added per interval
	RefillInterval time.Duration // refill period
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmtInvalid("capacity must be positive, got %d", c.Capacity)
	case c.RefillRate <= 0:
		return fmtInvalid("refill rate must be positive, got %d", c.RefillRate)
	case c.RefillInterval <= 0:
		return fmtInvalid("refill interval must be positive, got %v", c.RefillInterval)
	}
	return nil
}

// Result is the outcome of one rate limit check.
type Result struct {
	Limit     int
	Remaining int // negative when the request was denied
	ResetAt   time.Time
}

// Allowed reports whether the request fits in the bucket.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is the wait until the next refill, or 0 for allowed requests.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}
