package chronology

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-agestack/internal/config"
)

// ErrInvalidInput is returned when a computation receives a zero birth
// instant. The engine never substitutes "now"; any such fallback belongs to
// the calling layer.
var ErrInvalidInput = errors.New(config.ErrInvalidInput)

// Age is the exact signed age of a person at a given instant.
// Exactly one of the two variants is populated: Years/Months/Days after
// birth, PregnancyWeeks/ExtraDays before it.
type Age struct {
	Years  int
	Months int // 0..11
	Days   int

	// Prenatal variant (target instant before birth).
	Prenatal       bool
	PregnancyWeeks int // 0..40, against the canonical 40-week term
	ExtraDays      int // 0..6
}

// Calculate decomposes the span between birth and at.
//
// After birth the decomposition is calendar-aware: advancing birth by the
// returned years, then months, then days lands exactly on at's date. Before
// birth the whole-day distance is folded into pregnancy weeks; a resolved
// week of 0 means the instant predates the tracked pregnancy window.
func Calculate(birth, at time.Time) (Age, error) {
	if birth.IsZero() {
		return Age{}, ErrInvalidInput
	}

	if at.Before(birth) {
		daysBefore := wholeDaysBetween(at, birth)
		weeksBefore := daysBefore / config.DaysPerWeek
		week := config.PregnancyTermWeeks - weeksBefore
		if week < 0 {
			week = 0
		}
		return Age{
			Prenatal:       true,
			PregnancyWeeks: week,
			ExtraDays:      daysBefore % config.DaysPerWeek,
		}, nil
	}

	years, months, days := calendarOffset(birth, at)
	return Age{Years: years, Months: months, Days: days}, nil
}

// calendarOffset returns the whole-year/month/day decomposition from birth to
// at using variable month lengths. Borrowed days come from the months
// preceding at; short months (a February) can force a second borrow, so the
// loop runs until the day count is whole. This keeps the round trip exact:
// birth advanced by the result lands on at's calendar date.
func calendarOffset(birth, at time.Time) (years, months, days int) {
	years = at.Year() - birth.Year()
	months = int(at.Month()) - int(birth.Month())
	days = at.Day() - birth.Day()

	anchorYear, anchorMonth := at.Year(), at.Month()
	for days < 0 {
		anchorMonth--
		if anchorMonth < time.January {
			anchorMonth = time.December
			anchorYear--
		}
		days += daysInMonth(anchorYear, anchorMonth)
		months--
	}
	if months < 0 {
		years--
		months += config.MonthsPerYear
	}
	return years, months, days
}

// daysInMonth returns the length of a calendar month. Day 0 of the following
// month normalizes to its last day.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// wholeDaysBetween counts whole calendar days from a to b, ignoring the
// time-of-day portion of both instants.
func wholeDaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// String renders the age for display.
func (a Age) String() string {
	if a.Prenatal {
		if a.PregnancyWeeks == 0 {
			return config.AgeNotTracked
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d %s%s", a.PregnancyWeeks, config.AgeUnitWeek, plural(a.PregnancyWeeks))
		if a.ExtraDays > 0 {
			fmt.Fprintf(&b, "%s%d %s%s", config.AgeSeparator, a.ExtraDays, config.AgeUnitDay, plural(a.ExtraDays))
		}
		b.WriteString(" ")
		b.WriteString(config.AgePregnantWord)
		return b.String()
	}

	var parts []string
	if a.Years > 0 {
		parts = append(parts, fmt.Sprintf("%d %s%s", a.Years, config.AgeUnitYear, plural(a.Years)))
	}
	if a.Months > 0 {
		parts = append(parts, fmt.Sprintf("%d %s%s", a.Months, config.AgeUnitMonth, plural(a.Months)))
	}
	if a.Days > 0 {
		parts = append(parts, fmt.Sprintf("%d %s%s", a.Days, config.AgeUnitDay, plural(a.Days)))
	}
	if len(parts) == 0 {
		return config.AgeNewborn
	}
	return strings.Join(parts, config.AgeSeparator)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return config.PluralSuffix
}
