package schedule

import (
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

// fakeStore keeps everything in memory and satisfies every narrow store view
// the service depends on.
type fakeStore struct {
	nextID    int
	schedules map[int]model.Schedule
	playlists map[int]model.Playlist
	items     map[int][]model.PlaylistItem
	screens   map[int]model.Screen
	contents  map[int]model.Content
	settings  map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:    1,
		schedules: map[int]model.Schedule{},
		playlists: map[int]model.Playlist{},
		items:     map[int][]model.PlaylistItem{},
		screens:   map[int]model.Screen{},
		contents:  map[int]model.Content{},
		settings:  map[string]string{},
	}
}

func (f *fakeStore) ListSchedulesByScreen(screenID int) ([]model.Schedule, error) {
	var out []model.Schedule
	for _, s := range f.schedules {
		if s.ScreenID == screenID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListSchedulesBySeries(seriesID string) ([]model.Schedule, error) {
	var out []model.Schedule
	for _, s := range f.schedules {
		if s.SeriesID == seriesID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (f *fakeStore) GetScheduleByID(id int) (model.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return model.Schedule{}, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeStore) CreateScheduleSeries(rows []model.Schedule) ([]model.Schedule, error) {
	created := make([]model.Schedule, len(rows))
	for i, r := range rows {
		r.ID = f.nextID
		f.nextID++
		f.schedules[r.ID] = r
		created[i] = r
	}
	return created, nil
}

func (f *fakeStore) UpdateSchedule(id int, fields model.ScheduleUpdate) (model.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return model.Schedule{}, sql.ErrNoRows
	}
	s = merge(s, fields)
	f.schedules[id] = s
	return s, nil
}

func (f *fakeStore) UpdateScheduleSeries(seriesID string, fields model.ScheduleUpdate) ([]model.Schedule, error) {
	rows, _ := f.ListSchedulesBySeries(seriesID)
	out := make([]model.Schedule, 0, len(rows))
	for _, r := range rows {
		updated := merge(r, fields)
		f.schedules[r.ID] = updated
		out = append(out, updated)
	}
	return out, nil
}

func (f *fakeStore) DeleteSchedule(id int) (bool, error) {
	if _, ok := f.schedules[id]; !ok {
		return false, nil
	}
	delete(f.schedules, id)
	return true, nil
}

func (f *fakeStore) DeleteScheduleSeries(seriesID string) (int, error) {
	n := 0
	for id, s := range f.schedules {
		if s.SeriesID == seriesID {
			delete(f.schedules, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) GetPlaylistByID(id int) (model.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return model.Playlist{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeStore) ListPlaylistItems(playlistID int) ([]model.PlaylistItem, error) {
	return f.items[playlistID], nil
}

func (f *fakeStore) GetScreenByID(id int) (model.Screen, error) {
	s, ok := f.screens[id]
	if !ok {
		return model.Screen{}, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeStore) GetContentByID(id int) (model.Content, error) {
	c, ok := f.contents[id]
	if !ok {
		return model.Content{}, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeStore) GetSystemSetting(key string) (string, error) {
	return f.settings[key], nil
}

type fakePublisher struct {
	events []struct {
		ScreenID int
		Reason   string
	}
}

func (p *fakePublisher) ScheduleUpdated(screenID int, reason string) {
	p.events = append(p.events, struct {
		ScreenID int
		Reason   string
	}{screenID, reason})
}

func newTestService() (*Service, *fakeStore, *fakePublisher) {
	store := newFakeStore()
	pub := &fakePublisher{}
	store.playlists[1] = model.Playlist{ID: 1, Name: "loop"}
	store.screens[1] = model.Screen{ID: 1, Name: "lobby"}
	return NewService(store, store, store, store, store, pub), store, pub
}

func seriesInput() CreateSeriesInput {
	return CreateSeriesInput{
		Name:       "weekday loop",
		PlaylistID: 1,
		ScreenID:   1,
		DaysOfWeek: []int{1, 2, 3},
		StartTime:  "09:00",
		EndTime:    "17:00",
		Priority:   5,
		IsActive:   true,
		CreatedBy:  1,
	}
}

func TestCreateSeries_OneRowPerWeekday(t *testing.T) {
	svc, store, pub := newTestService()

	created, err := svc.CreateSeries(seriesInput())
	require.NoError(t, err)
	require.Len(t, created, 3)

	seriesID := created[0].SeriesID
	assert.NotEmpty(t, seriesID)
	days := map[int]bool{}
	for _, row := range created {
		assert.Equal(t, seriesID, row.SeriesID, "all rows share the series id")
		assert.Equal(t, "09:00", row.StartTime)
		days[row.DayOfWeek] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, days)

	assert.Len(t, store.schedules, 3)
	require.Len(t, pub.events, 1, "one notification for the whole series")
	assert.Equal(t, 1, pub.events[0].ScreenID)
}

func TestCreateSeries_DuplicateDaysCollapse(t *testing.T) {
	svc, store, _ := newTestService()

	in := seriesInput()
	in.DaysOfWeek = []int{1, 1, 2}
	created, err := svc.CreateSeries(in)
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Len(t, store.schedules, 2)
}

func TestCreateSeries_InvalidInputs(t *testing.T) {
	svc, _, _ := newTestService()
	var verr *ValidationError
	var nferr *NotFoundError

	in := seriesInput()
	in.DaysOfWeek = nil
	_, err := svc.CreateSeries(in)
	assert.ErrorAs(t, err, &verr, "empty weekday list")

	in = seriesInput()
	in.DaysOfWeek = []int{7}
	_, err = svc.CreateSeries(in)
	assert.ErrorAs(t, err, &verr, "weekday out of range")

	in = seriesInput()
	in.StartTime = "24:00"
	_, err = svc.CreateSeries(in)
	assert.ErrorAs(t, err, &verr, "invalid start time")

	in = seriesInput()
	in.StartDate = strptr("2025-02-01")
	in.EndDate = strptr("2025-01-01")
	_, err = svc.CreateSeries(in)
	assert.ErrorAs(t, err, &verr, "inverted date range")

	in = seriesInput()
	in.PlaylistID = 99
	_, err = svc.CreateSeries(in)
	assert.ErrorAs(t, err, &nferr, "unknown playlist")

	in = seriesInput()
	in.ScreenID = 99
	_, err = svc.CreateSeries(in)
	assert.ErrorAs(t, err, &nferr, "unknown screen")
}

func TestCreateSeries_CapacityRejection(t *testing.T) {
	svc, store, pub := newTestService()
	store.items[1] = []model.PlaylistItem{{Duration: 40}, {Duration: 25}} // 65s

	in := seriesInput()
	in.StartTime = "08:00"
	in.EndTime = "08:01"
	_, err := svc.CreateSeries(in)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, store.schedules)
	assert.Empty(t, pub.events)

	in.EndTime = "08:02"
	created, err := svc.CreateSeries(in)
	require.NoError(t, err)
	assert.Len(t, created, 3, "65s fits a two minute window")
}

func TestCreateSeries_ConflictAbortsWholeSeries(t *testing.T) {
	svc, store, pub := newTestService()

	first, err := svc.CreateSeries(CreateSeriesInput{
		Name: "existing", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{3}, StartTime: "10:00", EndTime: "11:00",
		IsActive: true, CreatedBy: 1,
	})
	require.NoError(t, err)
	pub.events = nil

	// Wednesday collides, Monday and Tuesday would have been fine
	in := seriesInput()
	in.StartTime = "10:30"
	in.EndTime = "11:30"
	_, err = svc.CreateSeries(in)

	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, first[0].ID, cerr.With.ScheduleID)
	assert.Len(t, store.schedules, 1, "nothing from the new series was written")
	assert.Empty(t, pub.events)
}

func TestCreateSeries_TouchingExistingWindowIsAllowed(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateSeries(CreateSeriesInput{
		Name: "morning", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{1}, StartTime: "10:00", EndTime: "11:00",
		IsActive: true, CreatedBy: 1,
	})
	require.NoError(t, err)

	_, err = svc.CreateSeries(CreateSeriesInput{
		Name: "midday", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{1}, StartTime: "11:00", EndTime: "12:00",
		IsActive: true, CreatedBy: 1,
	})
	assert.NoError(t, err, "back-to-back windows share a boundary minute")
}

func TestUpdate_SingleOccurrence(t *testing.T) {
	svc, store, pub := newTestService()
	created, err := svc.CreateSeries(seriesInput())
	require.NoError(t, err)
	pub.events = nil

	target := created[0]
	newName := "renamed"
	updated, err := svc.Update(target.ID, model.ScheduleUpdate{Name: &newName}, false)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "renamed", updated[0].Name)

	// siblings keep the old name
	for _, sibling := range created[1:] {
		row := store.schedules[sibling.ID]
		assert.Equal(t, "weekday loop", row.Name)
	}
	assert.Len(t, pub.events, 1)
}

func TestUpdate_ShrinkWithinOwnWindow(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreateSeries(seriesInput())
	require.NoError(t, err)

	// 09:00-17:00 -> 10:00-11:00 overlaps only the row being updated
	newStart, newEnd := "10:00", "11:00"
	updated, err := svc.Update(created[0].ID, model.ScheduleUpdate{
		StartTime: &newStart, EndTime: &newEnd,
	}, false)
	require.NoError(t, err, "a row never conflicts with itself")
	assert.Equal(t, "10:00", updated[0].StartTime)
}

func TestUpdate_ConflictLeavesRowUnchanged(t *testing.T) {
	svc, store, pub := newTestService()

	a, err := svc.CreateSeries(CreateSeriesInput{
		Name: "a", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{1}, StartTime: "10:00", EndTime: "11:00",
		IsActive: true, CreatedBy: 1,
	})
	require.NoError(t, err)
	_, err = svc.CreateSeries(CreateSeriesInput{
		Name: "b", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{1}, StartTime: "12:00", EndTime: "13:00",
		IsActive: true, CreatedBy: 1,
	})
	require.NoError(t, err)
	pub.events = nil

	// pushing a into b's window must fail and change nothing
	newStart, newEnd := "12:30", "13:30"
	_, err = svc.Update(a[0].ID, model.ScheduleUpdate{
		StartTime: &newStart, EndTime: &newEnd,
	}, false)

	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	row := store.schedules[a[0].ID]
	assert.Equal(t, "10:00", row.StartTime, "failed update must not persist")
	assert.Equal(t, "11:00", row.EndTime)
	assert.Empty(t, pub.events)
}

func TestUpdate_SeriesAppliesToAllRows(t *testing.T) {
	svc, store, _ := newTestService()
	created, err := svc.CreateSeries(seriesInput())
	require.NoError(t, err)

	newStart, newEnd := "18:00", "19:00"
	updated, err := svc.Update(created[0].ID, model.ScheduleUpdate{
		StartTime: &newStart, EndTime: &newEnd,
	}, true)
	require.NoError(t, err)
	assert.Len(t, updated, 3)
	for _, row := range store.schedules {
		assert.Equal(t, "18:00", row.StartTime)
	}
}

func TestUpdate_SeriesRejectsWeekdayChange(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreateSeries(seriesInput())
	require.NoError(t, err)

	day := 5
	_, err = svc.Update(created[0].ID, model.ScheduleUpdate{DayOfWeek: &day}, true)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr, "a series is one row per weekday; moving all of them to one day is nonsense")
}

func TestUpdate_CapacityRecheckedOnWindowChange(t *testing.T) {
	svc, store, _ := newTestService()
	created, err := svc.CreateSeries(seriesInput())
	require.NoError(t, err)

	store.items[1] = []model.PlaylistItem{{Duration: 3600}}

	// shrinking to 30 minutes no longer fits the hour-long playlist
	newEnd := "09:30"
	_, err = svc.Update(created[0].ID, model.ScheduleUpdate{EndTime: &newEnd}, false)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdate_UnknownSchedule(t *testing.T) {
	svc, _, _ := newTestService()
	name := "x"
	_, err := svc.Update(42, model.ScheduleUpdate{Name: &name}, false)
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestDelete_SingleRow(t *testing.T) {
	svc, store, pub := newTestService()
	created, err := svc.CreateSeries(seriesInput())
	require.NoError(t, err)
	pub.events = nil

	require.NoError(t, svc.Delete(created[1].ID))
	assert.Len(t, store.schedules, 2)
	assert.Len(t, pub.events, 1)

	var nferr *NotFoundError
	assert.ErrorAs(t, svc.Delete(created[1].ID), &nferr, "double delete reports not found")
}

func TestDeleteSeries_RemovesOnlyItsRows(t *testing.T) {
	svc, store, pub := newTestService()

	doomed, err := svc.CreateSeries(seriesInput())
	require.NoError(t, err)
	keeper, err := svc.CreateSeries(CreateSeriesInput{
		Name: "keeper", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{5, 6}, StartTime: "20:00", EndTime: "21:00",
		IsActive: true, CreatedBy: 1,
	})
	require.NoError(t, err)
	pub.events = nil

	require.NoError(t, svc.DeleteSeries(doomed[0].SeriesID))

	assert.Len(t, store.schedules, 2)
	for _, row := range keeper {
		_, ok := store.schedules[row.ID]
		assert.True(t, ok, "unrelated series survives")
	}
	assert.Len(t, pub.events, 1, "one screen, one notification")

	var nferr *NotFoundError
	assert.ErrorAs(t, svc.DeleteSeries(doomed[0].SeriesID), &nferr)
}

func TestActiveSchedule_TimezoneFallbackChain(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.CreateSeries(CreateSeriesInput{
		Name: "evening", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{1}, StartTime: "17:00", EndTime: "18:00",
		Priority: 10, IsActive: true, CreatedBy: 1,
	})
	require.NoError(t, err)

	at := time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC) // Manila 17:30 Monday

	// no screen timezone, no default: UTC says 09:30, nothing matches
	got, err := svc.ActiveSchedule(1, at)
	require.NoError(t, err)
	assert.Nil(t, got)

	// system default kicks in
	store.settings[DefaultTimezoneKey] = "Asia/Manila"
	got, err = svc.ActiveSchedule(1, at)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "evening", got.Name)

	// the screen's own timezone beats the default
	screen := store.screens[1]
	screen.Timezone = strptr("UTC")
	store.screens[1] = screen
	got, err = svc.ActiveSchedule(1, at)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestActiveSchedule_BadTimezoneFallsBack(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.CreateSeries(CreateSeriesInput{
		Name: "morning", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{1}, StartTime: "09:00", EndTime: "10:00",
		IsActive: true, CreatedBy: 1,
	})
	require.NoError(t, err)

	screen := store.screens[1]
	screen.Timezone = strptr("Not/AZone")
	store.screens[1] = screen

	at := time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC)
	got, err := svc.ActiveSchedule(1, at)
	require.NoError(t, err)
	require.NotNil(t, got, "unknown zone falls back to UTC instead of failing")
}

func TestActiveSchedule_UnknownScreen(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.ActiveSchedule(99, time.Now())
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)
}
