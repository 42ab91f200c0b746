package chronology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketsFor(labels ...Label) []Bucket {
	out := make([]Bucket, len(labels))
	for i, l := range labels {
		out[i] = Bucket{Label: l}
	}
	return out
}

func labelStrings(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Label.String()
	}
	return out
}

// TestOrder_Canonical verifies the birth-proximity-first total order from
// the documented scenario, extended with the mixed prenatal block.
func TestOrder_Canonical(t *testing.T) {
	in := bucketsFor(
		YearLabel(2),
		MonthLabel(5),
		BirthMonthLabel(),
		PregnancyWeekLabel(1, 0),
	)

	got := Order(in)

	assert.Equal(t, []string{
		"1 Week Pregnant",
		"Birth Month",
		"5 Months",
		"2 Years",
	}, labelStrings(got))
}

// TestOrder_FullVocabulary exercises every label class at once.
func TestOrder_FullVocabulary(t *testing.T) {
	in := bucketsFor(
		MonthLabel(11),
		OtherLabel("Alpha"),
		YearLabel(1),
		PregnancyWeekLabel(12, 3),
		BeforePregnancyLabel(),
		YearLabel(5),
		MonthLabel(1),
		OtherLabel("Beta"),
		PregnancyWeekLabel(39, 0),
		BirthMonthLabel(),
	)

	got := Order(in)

	assert.Equal(t, []string{
		"39 Weeks Pregnant",     // closest to birth sorts first
		"12 Weeks and 3 Days Pregnant",
		"Before Pregnancy",
		"Birth Month",
		"1 Month",
		"11 Months",
		"5 Years", // year buckets rank by descending year
		"1 Year",
		"Beta", // unknown labels sort last, by descending text
		"Alpha",
	}, labelStrings(got))
}

// TestOrder_PregnancyWeekDayTieBreak: within the same week, fewer remainder
// days means closer to birth.
func TestOrder_PregnancyWeekDayTieBreak(t *testing.T) {
	in := bucketsFor(
		PregnancyWeekLabel(20, 4),
		PregnancyWeekLabel(20, 1),
		PregnancyWeekLabel(21, 6),
	)

	got := Order(in)

	assert.Equal(t, []string{
		"21 Weeks and 6 Days Pregnant",
		"20 Weeks and 1 Day Pregnant",
		"20 Weeks and 4 Days Pregnant",
	}, labelStrings(got))
}

// TestOrder_DoesNotMutateInput guards the pure-function contract.
func TestOrder_DoesNotMutateInput(t *testing.T) {
	in := bucketsFor(YearLabel(1), BirthMonthLabel())
	snapshot := labelStrings(in)

	_ = Order(in)

	assert.Equal(t, snapshot, labelStrings(in))
}

// TestReverse_Involution checks reverse(reverse(x)) == x.
func TestReverse_Involution(t *testing.T) {
	in := Order(bucketsFor(
		PregnancyWeekLabel(30, 0),
		BirthMonthLabel(),
		MonthLabel(4),
		YearLabel(3),
	))

	twice := Reverse(Reverse(in))
	require.Equal(t, in, twice)

	once := Reverse(in)
	assert.Equal(t, labelStrings(in)[0], labelStrings(once)[len(once)-1])
}

func TestReverse_Empty(t *testing.T) {
	assert.Empty(t, Reverse(nil))
}
