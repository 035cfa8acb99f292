// Package penalty computes the tiered consequences of a worker cancelling or
// no-showing a shift. All functions are pure; side effects (score mutation,
// freezing) belong to the application service.
package penalty

import (
	"fmt"
	"time"
)

// Tier labels one band of the worker cancellation step function.
type Tier string

const (
	TierFree     Tier = "free"
	TierLate     Tier = "late"
	TierVeryLate Tier = "very_late"
	TierNoShow   Tier = "no_show"
)

// FreezeDuration is how long a no-show freezes the worker's account.
const FreezeDuration = 7 * 24 * time.Hour

// Outcome is the penalty for one worker-initiated cancellation.
type Outcome struct {
	Points int  `json:"points"` // non-positive score delta
	Freeze bool `json:"freeze"`
	Tier   Tier `json:"tier"`
}

// WorkerPenalty maps hours-until-shift-start to a penalty tier. Negative
// hours mean the shift has already started. The thresholds are evaluated as a
// nested chain (>6, >1, >-0.25, fallthrough) so each band's lower edge is
// strict: exactly 6.0h is late, and exactly -0.25h falls through to no_show.
func WorkerPenalty(hoursUntilShift float64) Outcome {
	switch {
	case hoursUntilShift > 6:
		return Outcome{Points: 0, Freeze: false, Tier: TierFree}
	case hoursUntilShift > 1:
		return Outcome{Points: -5, Freeze: false, Tier: TierLate}
	case hoursUntilShift > -0.25:
		return Outcome{Points: -15, Freeze: false, Tier: TierVeryLate}
	default:
		// 15 minutes or more after the shift started.
		return Outcome{Points: -20, Freeze: true, Tier: TierNoShow}
	}
}

// OwnerLateCancellation reports whether an owner-side cancellation lands
// close enough to the shift to warrant a late-cancellation note on the
// worker notification. Owners are never penalized.
func OwnerLateCancellation(hoursUntilShift float64) bool {
	return hoursUntilShift < 1
}

// HoursUntilShift combines the shift date ("2006-01-02") and wall-clock start
// time ("15:04") in the restaurant's timezone and returns the signed distance
// from now in hours. The timezone is explicit rather than inherited from the
// server to keep the arithmetic stable across regions and DST.
func HoursUntilShift(shiftDate, startTime string, loc *time.Location, now time.Time) (float64, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", shiftDate+" "+startTime, loc)
	if err != nil {
		return 0, fmt.Errorf("parse shift start: %w", err)
	}
	return start.Sub(now).Hours(), nil
}
