// Package registration holds the admission rules shared by tournament
// entities and tournament-category notices.
package registration

import (
	"context"
	"time"

	"skb_backend/internals/helpers/apperror"
)

// Window is the capacity and timing state of whatever is being registered for.
type Window struct {
	Open     bool
	Deadline *time.Time
	// Max <= 0 means unlimited.
	Max     int
	Current int
}

// DuplicateFunc reports whether the registrant already holds an active
// registration. It runs only after every cheaper check passed.
type DuplicateFunc func(ctx context.Context) (bool, error)

// Admit runs the ordered checks; the first failure wins:
// closed, deadline (strictly after), capacity, duplicate.
func Admit(ctx context.Context, w Window, now time.Time, duplicate DuplicateFunc) error {
	if !w.Open {
		return apperror.RegistrationClosed("registration is closed for this tournament")
	}
	if w.Deadline != nil && now.After(*w.Deadline) {
		return apperror.DeadlinePassed("registration deadline has passed")
	}
	if w.Max > 0 && w.Current >= w.Max {
		return apperror.TournamentFull("tournament is full")
	}
	if duplicate != nil {
		dup, err := duplicate(ctx)
		if err != nil {
			return apperror.Internal(err)
		}
		if dup {
			return apperror.DuplicateRegistration("already registered for this tournament")
		}
	}
	return nil
}

// Release returns the counter after one cancellation, floored at zero.
func Release(current int) int {
	if current <= 0 {
		return 0
	}
	return current - 1
}

// Outcome labels a registration result for metrics.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperror.KindOf(err))
}
