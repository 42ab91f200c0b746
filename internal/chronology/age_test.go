package chronology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCalculate_PostBirth verifies the calendar-aware decomposition against
// hand-checked fixtures, including short-month borrow cases.
func TestCalculate_PostBirth(t *testing.T) {
	tests := []struct {
		name       string
		birth      time.Time
		at         time.Time
		wantYears  int
		wantMonths int
		wantDays   int
		wantString string
	}{
		{
			name:       "Newborn (same day)",
			birth:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			at:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantString: "newborn",
		},
		{
			name:       "Two months and a few days",
			birth:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			at:         time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			wantMonths: 2,
			wantDays:   5,
			wantString: "2 months, 5 days",
		},
		{
			name:       "Full decomposition",
			birth:      time.Date(2020, 3, 10, 0, 0, 0, 0, time.UTC),
			at:         time.Date(2022, 6, 20, 0, 0, 0, 0, time.UTC),
			wantYears:  2,
			wantMonths: 3,
			wantDays:   10,
			wantString: "2 years, 3 months, 10 days",
		},
		{
			name:       "Singular units",
			birth:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			at:         time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
			wantYears:  1,
			wantMonths: 1,
			wantDays:   1,
			wantString: "1 year, 1 month, 1 day",
		},
		{
			name:       "End-of-January birth crossing February",
			birth:      time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
			at:         time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
			wantDays:   29,
			wantString: "29 days",
		},
		{
			name:       "Exactly one year",
			birth:      time.Date(2023, 5, 4, 0, 0, 0, 0, time.UTC),
			at:         time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
			wantYears:  1,
			wantString: "1 year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, err := Calculate(tt.birth, tt.at)
			require.NoError(t, err)

			assert.False(t, age.Prenatal)
			assert.Equal(t, tt.wantYears, age.Years, "years mismatch")
			assert.Equal(t, tt.wantMonths, age.Months, "months mismatch")
			assert.Equal(t, tt.wantDays, age.Days, "days mismatch")
			assert.Equal(t, tt.wantString, age.String())
		})
	}
}

// TestCalculate_RoundTripLaw checks that advancing the birth date by the
// returned components lands exactly on the target date. The fixture set
// deliberately includes month-length and leap traps.
func TestCalculate_RoundTripLaw(t *testing.T) {
	births := []time.Time{
		time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 30, 0, 0, 0, 0, time.UTC),
	}

	for _, birth := range births {
		// Sweep roughly three years forward in uneven steps.
		for offset := 0; offset < 1100; offset += 13 {
			at := birth.AddDate(0, 0, offset)

			age, err := Calculate(birth, at)
			require.NoError(t, err)

			rebuilt := birth.AddDate(0, age.Years*12+age.Months, 0).AddDate(0, 0, age.Days)
			assert.Equal(t, at, rebuilt,
				"round trip failed for birth=%s at=%s (got %d/%d/%d)",
				birth.Format(time.DateOnly), at.Format(time.DateOnly),
				age.Years, age.Months, age.Days)
		}
	}
}

// TestCalculate_Pregnancy verifies the 40-week prenatal model.
func TestCalculate_Pregnancy(t *testing.T) {
	birth := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		at         time.Time
		wantWeeks  int
		wantExtra  int
		wantString string
	}{
		{
			name:       "Mid pregnancy",
			at:         time.Date(2023, 9, 10, 0, 0, 0, 0, time.UTC), // 265 days before
			wantWeeks:  3,
			wantExtra:  6,
			wantString: "3 weeks, 6 days pregnant",
		},
		{
			name:       "Day before birth",
			at:         time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
			wantWeeks:  40,
			wantExtra:  1,
			wantString: "40 weeks, 1 day pregnant",
		},
		{
			name:       "Exactly one tracked week left",
			at:         time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC), // 7 days before
			wantWeeks:  39,
			wantExtra:  0,
			wantString: "39 weeks pregnant",
		},
		{
			name:       "Before the tracked window",
			at:         time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC), // 305 days before
			wantWeeks:  0,
			wantExtra:  305 % 7,
			wantString: "not yet in the tracked pregnancy window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, err := Calculate(birth, tt.at)
			require.NoError(t, err)

			assert.True(t, age.Prenatal)
			assert.Equal(t, tt.wantWeeks, age.PregnancyWeeks)
			assert.Equal(t, tt.wantExtra, age.ExtraDays)
			assert.Equal(t, tt.wantString, age.String())
		})
	}
}

// TestCalculate_InvalidBirth ensures the engine fails fast instead of
// substituting a default instant.
func TestCalculate_InvalidBirth(t *testing.T) {
	_, err := Calculate(time.Time{}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestWholeDaysBetween pins the day-count helper used by the prenatal path,
// including the documented fixture of 265 days.
func TestWholeDaysBetween(t *testing.T) {
	from := time.Date(2023, 9, 10, 23, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC)

	// Time-of-day must not influence the whole-day count.
	assert.Equal(t, 265, wholeDaysBetween(from, to))
	assert.Equal(t, 0, wholeDaysBetween(to, to))
}
