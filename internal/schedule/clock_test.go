package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay_Valid(t *testing.T) {
	cases := map[string]TimeOfDay{
		"00:00": {Hour: 0, Minute: 0},
		"09:05": {Hour: 9, Minute: 5},
		"23:59": {Hour: 23, Minute: 59},
	}
	for in, want := range cases {
		got, err := ParseTimeOfDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{
		"24:00", // hour out of range
		"8:00",  // not zero-padded
		"08:60",
		"0800",
		"08:0",
		"ab:cd",
		"08-00",
		"",
		" 8:00",
		"08:00 ",
	} {
		_, err := ParseTimeOfDay(in)
		assert.Error(t, err, "expected rejection of %q", in)
	}
}

func TestTimeOfDay_MinutesOrdering(t *testing.T) {
	early, _ := ParseTimeOfDay("08:30")
	late, _ := ParseTimeOfDay("17:05")
	assert.Less(t, early.Minutes(), late.Minutes())
	assert.Equal(t, "08:30", early.String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 6}, d)

	for _, in := range []string{"2025-13-01", "2025-02-30", "06-01-2025", "2025/01/06", "not-a-date"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestDate_Before(t *testing.T) {
	a, _ := ParseDate("2024-12-31")
	b, _ := ParseDate("2025-01-01")
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestProjectInstant_CrossesDateLine(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	// 16:30 UTC on Dec 31 is already 00:30 on Jan 1 in Manila (UTC+8)
	at := time.Date(2024, 12, 31, 16, 30, 0, 0, time.UTC)
	local := ProjectInstant(at, manila)

	assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 1}, local.Date)
	assert.Equal(t, 3, local.Weekday) // Wednesday
	assert.Equal(t, TimeOfDay{Hour: 0, Minute: 30}, local.Time)
}
