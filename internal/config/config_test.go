package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-agestack/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"LabelBirthMonth", config.LabelBirthMonth},
		{"LabelBeforePregnancy", config.LabelBeforePregnancy},
		{"RouteFeed", config.RouteFeed},
		{"RouteBuckets", config.RouteBuckets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 2000, config.DefaultLeapYear, "Default leap year must be 2000 for consistency")
	assert.Equal(t, config.GranularityFineName, config.DefaultGranularity)

	// Verify Timeout parsing works as expected
	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Agestack/"), "UserAgent must start with AppName/")
}

// TestChronologyModel guards the calendar model parameters. The bucketing
// and range math all hinge on these exact values.
func TestChronologyModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 40, config.PregnancyTermWeeks, "Full-term pregnancy is modeled as 40 weeks")
	assert.Equal(t, 7, config.DaysPerWeek)
	assert.Equal(t, 12, config.MonthsPerYear)
}

// TestPlaybackModel guards the scrub playback pacing and speed cycle.
func TestPlaybackModel(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.SecondsPerItem, 0.0, "Playback pacing must be positive")
	assert.GreaterOrEqual(t, config.SpeedMin, 1)
	assert.Greater(t, config.SpeedMax, config.SpeedMin, "Speed cycle needs at least two steps")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	// Timeouts
	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.DefaultICalRefresh, 0*time.Second)

	// Limits
	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	// The manifest is metadata only, so the cap stays modest but leaves room
	// for very large photo libraries.
	assert.GreaterOrEqual(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024), "MaxHTTPResponseSize should allow at least 1MB manifests")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
}
