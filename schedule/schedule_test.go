package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clock(t *testing.T, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	assert.NoError(t, err)
	return parsed
}

func TestIsOpenSameDay(t *testing.T) {
	tests := []struct {
		now  string
		want bool
	}{
		{"07:59", false},
		{"08:00", true},
		{"12:30", true},
		{"21:59", true},
		{"22:00", false},
		{"23:30", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.now, func(t *testing.T) {
			got := IsOpen("08:00", "22:00", clock(t, testCase.now))
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestIsOpenOvernight(t *testing.T) {
	tests := []struct {
		now  string
		want bool
	}{
		{"17:59", false},
		{"18:00", true},
		{"23:00", true},
		{"00:00", true},
		{"01:00", true},
		{"01:59", true},
		{"02:00", false},
		{"03:00", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.now, func(t *testing.T) {
			got := IsOpen("18:00", "02:00", clock(t, testCase.now))
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestIsOpenFailsOpenWithoutSchedule(t *testing.T) {
	now := clock(t, "03:00")

	assert.True(t, IsOpen("", "", now))
	assert.True(t, IsOpen("08:00", "", now))
	assert.True(t, IsOpen("", "22:00", now))
	assert.True(t, IsOpen("not-a-time", "22:00", now))
	assert.True(t, IsOpen("25:00", "22:00", now))
	assert.True(t, IsOpen("08:61", "22:00", now))
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("00:00"))
	assert.True(t, ValidClock("23:59"))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("12:60"))
	assert.False(t, ValidClock("12"))
	assert.False(t, ValidClock("12:00:00"))
	assert.False(t, ValidClock(""))
}
