package projection

import (
	"time"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
)

// Expand returns the strictly increasing occurrence dates of rule inside
// the half-open window [windowStart, windowEnd). The walk always starts
// at the rule's anchor so interval spacing survives even when the anchor
// predates the window; earlier dates are filtered out, not skipped.
// Inactive rules expand to nothing.
func Expand(rule models.RecurringRule, windowStart, windowEnd time.Time) []time.Time {
	if !rule.IsActive {
		return nil
	}

	var occurrences []time.Time
	next := startOfDay(rule.NextOccurrence)
	for next.Before(windowEnd) {
		if !next.Before(windowStart) {
			occurrences = append(occurrences, next)
		}
		next = NextOccurrence(next, rule.Frequency, rule.IntervalCount)
	}
	return occurrences
}

// NextOccurrence advances date by one recurrence step. An interval below 1
// is treated as 1 so the walk always makes progress. An unknown frequency
// falls back to monthly-by-1; rows stored with a bad enum keep firing
// rather than silently going dormant.
func NextOccurrence(date time.Time, frequency string, interval int) time.Time {
	if interval < 1 {
		interval = 1
	}

	switch frequency {
	case models.FreqDaily:
		return date.AddDate(0, 0, interval)
	case models.FreqWeekly:
		return date.AddDate(0, 0, 7*interval)
	case models.FreqBiweekly:
		return date.AddDate(0, 0, 14*interval)
	case models.FreqMonthly:
		return addMonthsClamped(date, interval)
	case models.FreqYearly:
		return addMonthsClamped(date, 12*interval)
	default:
		return addMonthsClamped(date, 1)
	}
}

// addMonthsClamped adds calendar months, clamping to the last valid day of
// the target month (Jan 31 + 1 month = Feb 28/29). Go's AddDate would
// normalize the overflow into March instead.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
