package net

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next request may be sent.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer allows perSecond requests per second with no bursting. A
// non-positive rate disables pacing and returns nil.
func NewPacer(perSecond float64) Pacer {
	if perSecond <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(perSecond), 1)
}
