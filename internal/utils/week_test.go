package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekNumberFirstWeek(t *testing.T) {
	start := date(2025, time.January, 1)

	require.Equal(t, 1, WeekNumber(start, start))
	require.Equal(t, 1, WeekNumber(start, date(2025, time.January, 5)))
	require.Equal(t, 1, WeekNumber(start, start.Add(6*24*time.Hour+23*time.Hour)))
}

func TestWeekNumberLaterWeeks(t *testing.T) {
	start := date(2025, time.January, 1)

	require.Equal(t, 2, WeekNumber(start, start.Add(7*24*time.Hour+time.Hour)))
	require.Equal(t, 2, WeekNumber(start, start.Add(10*24*time.Hour)))
	require.Equal(t, 2, WeekNumber(start, start.Add(13*24*time.Hour+12*time.Hour)))
	require.Equal(t, 3, WeekNumber(start, date(2025, time.January, 20)))
	require.Equal(t, 3, WeekNumber(start, start.Add(14*24*time.Hour+time.Hour)))
	require.Equal(t, 9, WeekNumber(start, start.Add(60*24*time.Hour+time.Hour)))
}

func TestWeekNumberReferenceBeforeStart(t *testing.T) {
	start := date(2025, time.January, 1)

	require.Equal(t, 1, WeekNumber(start, start.Add(-3*24*time.Hour)))
	require.Equal(t, 2, WeekNumber(start, start.Add(-12*24*time.Hour)))
	require.GreaterOrEqual(t, WeekNumber(start, date(2024, time.June, 1)), 1)
}

func TestIsValidSubmissionWindowWeekOne(t *testing.T) {
	start := date(2025, time.January, 1)
	reference := date(2025, time.January, 5)

	require.True(t, IsValidSubmissionWindow(1, start, reference))
	require.False(t, IsValidSubmissionWindow(2, start, reference))
	require.False(t, IsValidSubmissionWindow(0, start, reference))
	require.False(t, IsValidSubmissionWindow(-1, start, reference))
}

func TestIsValidSubmissionWindowMidCohort(t *testing.T) {
	start := date(2025, time.January, 1)
	reference := date(2025, time.January, 20)

	require.True(t, IsValidSubmissionWindow(3, start, reference))
	require.True(t, IsValidSubmissionWindow(2, start, reference))
	require.False(t, IsValidSubmissionWindow(1, start, reference))
	require.False(t, IsValidSubmissionWindow(4, start, reference))
}
