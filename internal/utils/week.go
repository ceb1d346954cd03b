package utils

import (
	"math"
	"time"
)

const hoursPerDay = 24

// WeekNumber maps a cohort start date and a reference instant to a 1-based
// course week. Elapsed whole days are counted with a ceiling, divided by
// seven and rounded up. The absolute difference is used, so a reference
// before the cohort start still yields a positive week rather than an error.
func WeekNumber(cohortStart, reference time.Time) int {
	diff := reference.Sub(cohortStart)
	if diff < 0 {
		diff = -diff
	}

	days := int(math.Ceil(diff.Hours() / hoursPerDay))
	week := int(math.Ceil(float64(days) / 7))
	if week < 1 {
		week = 1
	}

	return week
}

// IsValidSubmissionWindow reports whether a submission for the given week is
// accepted at the reference instant: the current week and the immediately
// previous week are open, everything else is closed. Week numbers below one
// are never valid.
func IsValidSubmissionWindow(weekNumber int, cohortStart, reference time.Time) bool {
	if weekNumber < 1 {
		return false
	}

	currentWeek := WeekNumber(cohortStart, reference)
	return weekNumber == currentWeek || weekNumber == currentWeek-1
}
