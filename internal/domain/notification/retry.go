package notification

import "time"

type RetryPolicy struct {
	MaxAttempts int
	Base        time.Duration
	Max         time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, Base: 30 * time.Second, Max: time.Hour}
}

// Backoff doubles the wait for every failed attempt, capped at Max.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	wait := p.Base
	for i := 1; i < attempt; i++ {
		wait *= 2
		if p.Max > 0 && wait >= p.Max {
			return p.Max
		}
	}
	if p.Max > 0 && wait > p.Max {
		return p.Max
	}
	return wait
}
