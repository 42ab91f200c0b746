package chronology

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/tartampluch/go-agestack/internal/config"
)

// LabelKind discriminates the closed bucket vocabulary.
type LabelKind int

const (
	// LabelOther covers any string outside the known vocabulary. Such labels
	// never resolve to a date range.
	LabelOther LabelKind = iota
	LabelPregnancyWeek
	LabelBeforePregnancy
	LabelWholePregnancy
	LabelBirthMonth
	LabelMonth
	LabelYear
)

// Label is a bucket name carrying its parsed integers. Comparing and ordering
// labels works on the tag and numbers, never on the rendered string.
type Label struct {
	Kind  LabelKind
	Week  int // pregnancy week, 1..39
	Day   int // extra days within the pregnancy week, 0..6
	Month int // months after birth, 0..11
	Year  int // whole years after birth, >= 1
	Text  string
}

// Label constructors. Using them keeps the unused numeric fields zeroed so
// labels stay comparable with ==.

func PregnancyWeekLabel(week, day int) Label {
	return Label{Kind: LabelPregnancyWeek, Week: week, Day: day}
}

func BeforePregnancyLabel() Label { return Label{Kind: LabelBeforePregnancy} }

func WholePregnancyLabel() Label { return Label{Kind: LabelWholePregnancy} }

func BirthMonthLabel() Label { return Label{Kind: LabelBirthMonth} }

func MonthLabel(months int) Label { return Label{Kind: LabelMonth, Month: months} }

func YearLabel(years int) Label { return Label{Kind: LabelYear, Year: years} }

func OtherLabel(text string) Label { return Label{Kind: LabelOther, Text: text} }

// String renders the canonical English label.
func (l Label) String() string {
	switch l.Kind {
	case LabelPregnancyWeek:
		if l.Day > 0 {
			return fmt.Sprintf(config.FormatLabelWeeksDaysPreg, l.Week, plural(l.Week), l.Day, plural(l.Day))
		}
		return fmt.Sprintf(config.FormatLabelWeeksPregnant, l.Week, plural(l.Week))
	case LabelBeforePregnancy:
		return config.LabelBeforePregnancy
	case LabelWholePregnancy:
		return config.LabelPregnancy
	case LabelBirthMonth:
		return config.LabelBirthMonth
	case LabelMonth:
		return fmt.Sprintf(config.FormatLabelMonths, l.Month, plural(l.Month))
	case LabelYear:
		return fmt.Sprintf(config.FormatLabelYears, l.Year, plural(l.Year))
	default:
		return l.Text
	}
}

var (
	reWeekLabel  = regexp.MustCompile(`^(\d+) Weeks?(?: and (\d+) Days?)? Pregnant$`)
	reMonthLabel = regexp.MustCompile(`^(\d+) Months?$`)
	reYearLabel  = regexp.MustCompile(`^(\d+) Years?$`)
)

// ParseLabel is the inverse of Label.String. Strings outside the vocabulary
// come back as an Other label carrying the raw text.
func ParseLabel(s string) Label {
	switch s {
	case config.LabelBirthMonth:
		return BirthMonthLabel()
	case config.LabelPregnancy:
		return WholePregnancyLabel()
	case config.LabelBeforePregnancy:
		return BeforePregnancyLabel()
	}
	if m := reWeekLabel.FindStringSubmatch(s); m != nil {
		week, _ := strconv.Atoi(m[1])
		day := 0
		if m[2] != "" {
			day, _ = strconv.Atoi(m[2])
		}
		return PregnancyWeekLabel(week, day)
	}
	if m := reMonthLabel.FindStringSubmatch(s); m != nil {
		months, _ := strconv.Atoi(m[1])
		return MonthLabel(months)
	}
	if m := reYearLabel.FindStringSubmatch(s); m != nil {
		years, _ := strconv.Atoi(m[1])
		return YearLabel(years)
	}
	return OtherLabel(s)
}

// Group partitions photos into labeled buckets under the given granularity.
//
// Each photo lands in exactly one bucket; bucket order follows first use and
// photo order within a bucket follows the input traversal order. Callers
// that want a canonical result pass the output through Order.
func Group(photos []Photo, birth time.Time, g Granularity) ([]Bucket, error) {
	if birth.IsZero() {
		return nil, ErrInvalidInput
	}

	index := make(map[Label]int)
	var buckets []Bucket
	for _, p := range photos {
		label := classify(p.DateTaken, birth, g)
		if i, ok := index[label]; ok {
			buckets[i].Photos = append(buckets[i].Photos, p)
			continue
		}
		index[label] = len(buckets)
		buckets = append(buckets, Bucket{Label: label, Photos: []Photo{p}})
	}
	return buckets, nil
}

// classify maps a single instant to its bucket label relative to birth.
func classify(taken, birth time.Time, g Granularity) Label {
	if taken.Before(birth) {
		if g == Coarse {
			return WholePregnancyLabel()
		}
		daysBefore := wholeDaysBetween(taken, birth)
		week := config.PregnancyTermWeeks - daysBefore/config.DaysPerWeek
		switch {
		case week <= 0:
			return BeforePregnancyLabel()
		case week >= config.PregnancyTermWeeks:
			// Week 40 means the photo falls within days of the due date.
			return BirthMonthLabel()
		default:
			return PregnancyWeekLabel(week, daysBefore%config.DaysPerWeek)
		}
	}

	years, months, _ := calendarOffset(birth, taken)
	switch {
	case years >= 1:
		return YearLabel(years)
	case g == Fine && months == 0:
		return BirthMonthLabel()
	default:
		return MonthLabel(months)
	}
}
