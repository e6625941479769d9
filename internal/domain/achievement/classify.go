package achievement

import (
	"math"
	"time"
)

// Classification thresholds. Tier bounds are inclusive on the lower end:
// exactly 120 minutes is gold, exactly 30 is bronze.
const (
	AfterHoursCutoff = 20 // local hour of day

	SpeedTaskThresholdMinutes = 15

	SpeedDayBronzeMinutes = 30
	SpeedDaySilverMinutes = 60
	SpeedDayGoldMinutes   = 120

	ExceptionalImprovementPercent = 20.0
)

// MinutesSaved returns the signed number of minutes between the planned end
// of a task and its actual completion. Positive means finished early,
// negative means finished late. Callers track "no plan" separately; zero is
// a real value here, not a sentinel.
func MinutesSaved(plannedStart time.Time, plannedDurationHours float64, actualCompletion time.Time) int {
	plannedEnd := plannedStart.Add(time.Duration(plannedDurationHours * float64(time.Hour)))
	return int(math.Round(plannedEnd.Sub(actualCompletion).Minutes()))
}

// IsAfterHours reports whether a completion timestamp falls at or after the
// after-hours cutoff, using the hour in the timestamp's own location. The
// same convention drives LocalDate so a 23:58 completion lands on the same
// day as its after-hours classification.
func IsAfterHours(t time.Time) bool {
	return t.Hour() >= AfterHoursCutoff
}

// LocalDate truncates a timestamp to its local calendar day. The result is
// normalized to UTC midnight so date equality survives round-trips through
// the database's date column.
func LocalDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SpeedDayTier classifies a day's total minutes saved into a badge tier.
// The second return value is false when the total earns no badge at all.
func SpeedDayTier(totalMinutesSaved int) (BadgeTier, bool) {
	switch {
	case totalMinutesSaved >= SpeedDayGoldMinutes:
		return TierGold, true
	case totalMinutesSaved >= SpeedDaySilverMinutes:
		return TierSilver, true
	case totalMinutesSaved >= SpeedDayBronzeMinutes:
		return TierBronze, true
	default:
		return "", false
	}
}

// percentageDecrease returns the percentage drop from previous to current.
// A zero baseline means no comparison is possible; the second return value
// is false in that case rather than treating it as a 100% improvement.
func percentageDecrease(previous, current int64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}
	decrease := float64(previous-current) / float64(previous) * 100
	return math.Round(decrease*100) / 100, true
}
