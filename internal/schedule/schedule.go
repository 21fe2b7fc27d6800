// Package schedule implements the Leitner ladder that decides when a card is reviewed again.
package schedule

import "time"

// Intervals holds the review interval in days for each rung.
var Intervals = [...]int{1, 2, 4, 8, 16}

const day = 24 * time.Hour

// Result is the outcome of answering a card.
type Result struct {
	NextReview time.Time
	Difficulty Rung
}

// ComputeNextReview moves current one rung up or down and schedules the next
// review relative to now, not to the card's previous due date, so a late
// review never compounds the delay.
func ComputeNextReview(current Rung, wasCorrect bool, now time.Time) Result {
	next := current.Next(wasCorrect)
	return Result{
		NextReview: now.Add(time.Duration(IntervalDays(next)) * day),
		Difficulty: next,
	}
}

// IntervalDays returns the interval for rung, falling back to 1 day outside the ladder.
func IntervalDays(rung Rung) int {
	if rung < 0 || int(rung) >= len(Intervals) {
		return 1
	}
	return Intervals[rung]
}

// Reviewable is anything with a next review time.
type Reviewable interface {
	DueAt() time.Time
}

// IsDue reports whether item may be reviewed at now.
func IsDue[T Reviewable](item T, now time.Time) bool {
	return !item.DueAt().After(now)
}

// CardsForReview returns the items due at now, keeping input order.
// The result is a new slice and is not updated when items change later.
func CardsForReview[T Reviewable](items []T, now time.Time) []T {
	due := make([]T, 0, len(items))
	for _, item := range items {
		if IsDue(item, now) {
			due = append(due, item)
		}
	}
	return due
}

// DueCount counts the items due at now.
func DueCount[T Reviewable](items []T, now time.Time) int {
	count := 0
	for _, item := range items {
		if IsDue(item, now) {
			count++
		}
	}
	return count
}

// Scheduler binds the ladder to a clock.
type Scheduler struct {
	Now func() time.Time
}

// NewScheduler returns a Scheduler using the wall clock.
func NewScheduler() *Scheduler {
	return &Scheduler{Now: time.Now}
}

// NextReview answers a card at the scheduler's current time.
func (s *Scheduler) NextReview(current Rung, wasCorrect bool) Result {
	return ComputeNextReview(current, wasCorrect, s.Now())
}
