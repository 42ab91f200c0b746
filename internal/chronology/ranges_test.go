package chronology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveRange_PostBirth verifies the calendar windows for birth-month,
// month and year labels.
func TestResolveRange_PostBirth(t *testing.T) {
	birth := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		label     Label
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Birth Month",
			label:     BirthMonthLabel(),
			wantStart: birth,
			wantEnd:   time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Month zero (coarse vocabulary)",
			label:     MonthLabel(0),
			wantStart: birth,
			wantEnd:   time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Fifth month",
			label:     MonthLabel(5),
			wantStart: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Second year",
			label:     YearLabel(2),
			wantStart: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ResolveRange(tt.label, birth)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

// TestResolveRange_PregnancyWeek checks the 7-day (or partial) prenatal
// windows, including the end-of-day ceiling on the end bound.
func TestResolveRange_PregnancyWeek(t *testing.T) {
	birth := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Whole week", func(t *testing.T) {
		start, end, err := ResolveRange(PregnancyWeekLabel(39, 0), birth)
		require.NoError(t, err)

		// Week 39 ends 7 days before birth.
		wantEndDay := birth.AddDate(0, 0, -7)
		assert.Equal(t, wantEndDay.AddDate(0, 0, -7), start)
		assert.Equal(t, wantEndDay.Year(), end.Year())
		assert.Equal(t, wantEndDay.YearDay(), end.YearDay())
		assert.Equal(t, 23, end.Hour(), "end bound must carry an end-of-day ceiling")
	})

	t.Run("Partial week with day remainder", func(t *testing.T) {
		start, end, err := ResolveRange(PregnancyWeekLabel(3, 6), birth)
		require.NoError(t, err)

		wantEndDay := birth.AddDate(0, 0, -(40-3)*7)
		assert.Equal(t, wantEndDay.AddDate(0, 0, -7), start)
		assert.True(t, end.After(start))
		assert.Equal(t, wantEndDay.YearDay(), end.YearDay())
	})
}

// TestResolveRange_WholePregnancy: unbounded below, capped at birth.
func TestResolveRange_WholePregnancy(t *testing.T) {
	birth := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	start, end, err := ResolveRange(WholePregnancyLabel(), birth)
	require.NoError(t, err)

	assert.True(t, start.IsZero(), "lower bound is the earliest supported instant")
	assert.Equal(t, birth, end)
}

// TestResolveRange_Unresolvable ensures unknown and empty labels surface the
// sentinel instead of a guessed window.
func TestResolveRange_Unresolvable(t *testing.T) {
	birth := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := ResolveRange(OtherLabel("Holiday Album"), birth)
	assert.ErrorIs(t, err, ErrUnresolvableLabel)

	_, _, err = ResolveRange(ParseLabel(""), birth)
	assert.ErrorIs(t, err, ErrUnresolvableLabel)
}

func TestResolveRange_InvalidBirth(t *testing.T) {
	_, _, err := ResolveRange(BirthMonthLabel(), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestResolveRange_AgreesWithClassify is the resolver/bucketizer round-trip
// law: a photo taken inside a resolved window classifies back to the same
// label. Prenatal windows are checked at their end bound, which is the day
// the label names.
func TestResolveRange_AgreesWithClassify(t *testing.T) {
	birth := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	postnatal := []Label{
		BirthMonthLabel(),
		MonthLabel(2),
		MonthLabel(11),
		YearLabel(1),
		YearLabel(4),
	}

	for _, label := range postnatal {
		start, end, err := ResolveRange(label, birth)
		require.NoError(t, err)

		for _, taken := range []time.Time{start, start.AddDate(0, 0, 3), end.Add(-time.Hour)} {
			if !taken.Before(end) {
				continue
			}
			got := classify(taken, birth, Fine)
			assert.Equal(t, label, got,
				"photo at %s should classify as %q", taken.Format(time.DateOnly), label.String())
		}
	}

	t.Run("Prenatal end bound", func(t *testing.T) {
		label := PregnancyWeekLabel(30, 0)
		_, end, err := ResolveRange(label, birth)
		require.NoError(t, err)

		day := time.Date(end.Year(), end.Month(), end.Day(), 12, 0, 0, 0, time.UTC)
		assert.Equal(t, label, classify(day, birth, Fine))
	})
}
