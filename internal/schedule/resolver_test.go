package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

func TestActiveAt_EvaluatesInScreenTimezone(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	// 09:30 UTC on Monday Jan 6 is 17:30 the same Monday in Manila
	at := time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC)

	evening := sched(1, 1, "17:00", "18:00")
	evening.Priority = 10
	morning := sched(2, 1, "09:00", "10:00")
	morning.Priority = 5

	got := ActiveAt([]model.Schedule{morning, evening}, at, manila)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.ID, "Manila wall clock says evening, not morning")

	// the same instant in UTC picks the morning window instead
	got = ActiveAt([]model.Schedule{morning, evening}, at, time.UTC)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.ID)
}

func TestActiveAt_DateWindowUsesLocalDate(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	// 16:30 UTC Dec 31 is already 00:30 Jan 1 (a Wednesday) in Manila
	at := time.Date(2024, 12, 31, 16, 30, 0, 0, time.UTC)

	newYearOnly := sched(1, 3, "00:00", "06:00")
	newYearOnly.StartDate = strptr("2025-01-01")
	newYearOnly.EndDate = strptr("2025-01-01")

	got := ActiveAt([]model.Schedule{newYearOnly}, at, manila)
	require.NotNil(t, got, "local calendar has rolled over even though UTC has not")

	assert.Nil(t, ActiveAt([]model.Schedule{newYearOnly}, at, time.UTC))
}

func TestActiveAt_PriorityAndTieBreak(t *testing.T) {
	at := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC) // Monday noon

	low := sched(1, 1, "09:00", "17:00")
	low.Priority = 1
	high := sched(2, 1, "09:00", "17:00")
	high.Priority = 9

	got := ActiveAt([]model.Schedule{low, high}, at, time.UTC)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.ID, "highest priority wins")

	tieA := sched(5, 1, "09:00", "17:00")
	tieB := sched(3, 1, "09:00", "17:00")
	got = ActiveAt([]model.Schedule{tieA, tieB}, at, time.UTC)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.ID, "equal priority resolves to the lowest id")

	// order of the input slice must not matter
	got = ActiveAt([]model.Schedule{tieB, tieA}, at, time.UTC)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.ID)
}

func TestActiveAt_SkipsInactiveAndMalformed(t *testing.T) {
	at := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

	inactive := sched(1, 1, "09:00", "17:00")
	inactive.IsActive = false
	malformed := sched(2, 1, "9:00", "17:00")
	ok := sched(3, 1, "09:00", "17:00")

	got := ActiveAt([]model.Schedule{inactive, malformed, ok}, at, time.UTC)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.ID)

	assert.Nil(t, ActiveAt([]model.Schedule{inactive, malformed}, at, time.UTC))
	assert.Nil(t, ActiveAt(nil, at, time.UTC))
}

func TestActiveAt_OvernightWindowMatchesEarlyMorning(t *testing.T) {
	// Saturday 01:00: an overnight Friday 22:00-02:00 row does NOT match,
	// because the row's weekday is compared against the local weekday
	at := time.Date(2025, 1, 11, 1, 0, 0, 0, time.UTC) // Saturday

	friday := sched(1, 5, "22:00", "02:00")
	saturday := sched(2, 6, "22:00", "02:00")

	got := ActiveAt([]model.Schedule{friday, saturday}, at, time.UTC)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.ID, "the Saturday row owns Saturday 01:00")
}
