package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

func TestManifest_ResolvesActiveScheduleToContent(t *testing.T) {
	svc, store, _ := newTestService()

	store.contents[10] = model.Content{ID: 10, Name: "promo", Type: "video", URL: "/uploads/promo.mp4", DefaultDuration: 45}
	store.contents[11] = model.Content{ID: 11, Name: "menu", Type: "image", URL: "/uploads/menu.png", DefaultDuration: 30}
	store.items[1] = []model.PlaylistItem{
		{ID: 1, ContentID: 10, Position: 0, Duration: 20},
		{ID: 2, ContentID: 11, Position: 1, Duration: 0}, // falls back to content default
	}

	created, err := svc.CreateSeries(CreateSeriesInput{
		Name: "all day", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{1}, StartTime: "00:00", EndTime: "23:59",
		Priority: 3, IsActive: true, CreatedBy: 1,
	})
	require.NoError(t, err)

	at := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC) // Monday
	m, err := svc.Manifest(context.Background(), 1, at)
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, created[0].ID, m.ScheduleID)
	assert.Equal(t, "all day", m.ScheduleName)
	assert.Equal(t, 1, m.PlaylistID)
	assert.Equal(t, 3, m.Priority)

	require.Len(t, m.Items, 2)
	assert.Equal(t, 10, m.Items[0].ContentID, "playlist order is preserved")
	assert.Equal(t, 20, m.Items[0].Duration, "explicit item duration wins")
	assert.Equal(t, 11, m.Items[1].ContentID)
	assert.Equal(t, 30, m.Items[1].Duration, "zero duration falls back to the content default")
	assert.Equal(t, "/uploads/menu.png", m.Items[1].URL)
}

func TestManifest_NilWhenNothingActive(t *testing.T) {
	svc, _, _ := newTestService()

	m, err := svc.Manifest(context.Background(), 1, time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, m, "no schedule, no manifest")
}

func TestManifest_MissingContentFails(t *testing.T) {
	svc, store, _ := newTestService()

	store.items[1] = []model.PlaylistItem{{ID: 1, ContentID: 404, Position: 0, Duration: 10}}
	_, err := svc.CreateSeries(CreateSeriesInput{
		Name: "broken", PlaylistID: 1, ScreenID: 1,
		DaysOfWeek: []int{1}, StartTime: "00:00", EndTime: "23:59",
		IsActive: true, CreatedBy: 1,
	})
	require.NoError(t, err)

	_, err = svc.Manifest(context.Background(), 1, time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC))
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestManifest_UnknownScreen(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Manifest(context.Background(), 99, time.Now())
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)
}
