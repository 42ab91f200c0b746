package chronology

import (
	"errors"
	"time"

	"github.com/tartampluch/go-agestack/internal/config"
)

// ErrUnresolvableLabel is returned when a label outside the known vocabulary
// is asked for its date range. The caller decides on a fallback window; the
// engine never guesses one.
var ErrUnresolvableLabel = errors.New(config.ErrUnresolvableLabel)

// ResolveRange inverts a bucket label into the concrete [start, end) window
// it denotes, anchored at the birth instant. The window is what an external
// asset picker should be scoped to when filling that bucket.
func ResolveRange(label Label, birth time.Time) (start, end time.Time, err error) {
	if birth.IsZero() {
		return time.Time{}, time.Time{}, ErrInvalidInput
	}

	switch label.Kind {
	case LabelBirthMonth:
		return birth, birth.AddDate(0, 1, 0), nil

	case LabelMonth:
		start = birth.AddDate(0, label.Month, 0)
		return start, birth.AddDate(0, label.Month+1, 0), nil

	case LabelYear:
		start = birth.AddDate(label.Year, 0, 0)
		return start, birth.AddDate(label.Year+1, 0, 0), nil

	case LabelPregnancyWeek:
		daysBeforeBirth := (config.PregnancyTermWeeks - label.Week) * config.DaysPerWeek
		end = birth.AddDate(0, 0, -daysBeforeBirth)
		if label.Day > 0 {
			start = end.AddDate(0, 0, -(label.Day + 1))
		} else {
			start = end.AddDate(0, 0, -config.DaysPerWeek)
		}
		// The end bound is a calendar day, so the window runs to its end.
		return start, endOfDay(end), nil

	case LabelWholePregnancy:
		// Unbounded below in practice, bounded above at birth.
		return time.Time{}, birth, nil

	case LabelBeforePregnancy:
		start = time.Time{}
		end = birth.AddDate(0, 0, -config.PregnancyTermWeeks*config.DaysPerWeek)
		return start, end, nil

	default:
		return time.Time{}, time.Time{}, ErrUnresolvableLabel
	}
}

// endOfDay ceils an instant to the last nanosecond of its calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
