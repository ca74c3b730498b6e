package breach

import "time"

// BackoffPolicy decides how long to wait before retrying a range query.
type BackoffPolicy struct {
	// RateLimitBase is the wait after the first 429; it doubles per attempt.
	RateLimitBase time.Duration
	// TimeoutDelay is the fixed wait before the single retry after a timeout.
	TimeoutDelay time.Duration
	// ConnectionDelay grows linearly with the attempt number.
	ConnectionDelay time.Duration
}

func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{
		RateLimitBase:   time.Second,
		TimeoutDelay:    2 * time.Second,
		ConnectionDelay: 3 * time.Second,
	}
}

// RateLimited is the wait after a 429 on the given zero-based attempt.
func (p BackoffPolicy) RateLimited(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return p.RateLimitBase << uint(attempt)
}

func (p BackoffPolicy) Timeout() time.Duration {
	return p.TimeoutDelay
}

// ConnectionFailed is the wait after a connection failure on the given
// zero-based attempt.
func (p BackoffPolicy) ConnectionFailed(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return p.ConnectionDelay * time.Duration(attempt+1)
}

// Sleeper blocks for a duration. clock.Clock from code.cloudfoundry.org/clock
// satisfies it.
type Sleeper interface {
	Sleep(time.Duration)
}
