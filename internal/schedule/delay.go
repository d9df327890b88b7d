package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDuration is returned when a task's duration is below one day.
	ErrInvalidDuration = errors.New("duration must be at least 1 day")

	// ErrInvalidDate is returned when a stored date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

// Delay computes the signed delay in days between a task's planned finish
// and its actual finish. Positive means late, negative ahead, zero on time.
// It returns nil when actualFinish is empty: the task has not finished yet,
// which is a recognized state, not an error.
func Delay(startDate string, duration int, actualFinish string) (*int, error) {
	if actualFinish == "" {
		return nil, nil
	}
	if duration < 1 {
		return nil, ErrInvalidDuration
	}
	start, ok := ParseDay(startDate)
	if !ok {
		return nil, fmt.Errorf("%w: start date %q", ErrInvalidDate, startDate)
	}
	finish, ok := ParseDay(actualFinish)
	if !ok {
		return nil, fmt.Errorf("%w: actual finish %q", ErrInvalidDate, actualFinish)
	}
	d := daysBetween(PlannedFinish(start, duration), finish)
	return &d, nil
}
