package chronology

import (
	"sort"

	"github.com/tartampluch/go-agestack/internal/config"
)

// rankClass positions a label's kind within the canonical order. The rule is
// birth proximity, not strict chronology: the prenatal block runs from the
// week closest to birth outward, then Birth Month, then the postnatal
// buckets. Year buckets rank among themselves by descending year count, and
// unknown labels sort after everything else.
func rankClass(l Label) int {
	switch l.Kind {
	case LabelPregnancyWeek:
		return 0
	case LabelBeforePregnancy:
		return 1
	case LabelWholePregnancy:
		return 2
	case LabelBirthMonth:
		return 3
	case LabelMonth:
		return 4
	case LabelYear:
		return 5
	default:
		return 6
	}
}

// Less reports whether label l sorts before m in the canonical order.
func (l Label) Less(m Label) bool {
	cl, cm := rankClass(l), rankClass(m)
	if cl != cm {
		return cl < cm
	}
	switch l.Kind {
	case LabelPregnancyWeek:
		// Closer to birth means fewer whole days before it.
		dl := (config.PregnancyTermWeeks-l.Week)*config.DaysPerWeek + l.Day
		dm := (config.PregnancyTermWeeks-m.Week)*config.DaysPerWeek + m.Day
		return dl < dm
	case LabelMonth:
		return l.Month < m.Month
	case LabelYear:
		return l.Year > m.Year
	case LabelOther:
		return l.Text > m.Text
	default:
		return false
	}
}

// Order sorts buckets into the canonical order. The input slice is not
// mutated. The sort is stable, though labels are unique within any result
// set Group produces.
func Order(buckets []Bucket) []Bucket {
	out := make([]Bucket, len(buckets))
	copy(out, buckets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Label.Less(out[j].Label)
	})
	return out
}

// Reverse flips an ordered bucket list, serving the oldest-to-latest /
// latest-to-oldest stack toggle. Applying it twice restores the input.
func Reverse(buckets []Bucket) []Bucket {
	out := make([]Bucket, len(buckets))
	for i, b := range buckets {
		out[len(buckets)-1-i] = b
	}
	return out
}
