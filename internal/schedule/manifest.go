package schedule

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// ManifestItem is one playable entry handed to a device.
type ManifestItem struct {
	ContentID int    `json:"content_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	Duration  int    `json:"duration"` // seconds
	Position  int    `json:"position"`
}

// Manifest is what a screen should be playing right now.
type Manifest struct {
	ScheduleID   int            `json:"schedule_id"`
	ScheduleName string         `json:"schedule_name"`
	PlaylistID   int            `json:"playlist_id"`
	Priority     int            `json:"priority"`
	Items        []ManifestItem `json:"items"`
}

// Manifest resolves the screen's active schedule into playable content
// references. Returns nil when no schedule is active. Each content lookup
// is an independent round trip, so they run concurrently; playlist order is
// preserved.
func (s *Service) Manifest(ctx context.Context, screenID int, at time.Time) (*Manifest, error) {
	active, err := s.ActiveSchedule(screenID, at)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, nil
	}

	items, err := s.playlists.ListPlaylistItems(active.PlaylistID)
	if err != nil {
		return nil, err
	}

	out := make([]ManifestItem, len(items))
	g, _ := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			content, err := s.contents.GetContentByID(item.ContentID)
			if err != nil {
				return asNotFound(err, "content", strconv.Itoa(item.ContentID))
			}
			duration := item.Duration
			if duration == 0 {
				duration = content.DefaultDuration
			}
			out[i] = ManifestItem{
				ContentID: content.ID,
				Name:      content.Name,
				Type:      content.Type,
				URL:       content.URL,
				Duration:  duration,
				Position:  item.Position,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Manifest{
		ScheduleID:   active.ID,
		ScheduleName: active.Name,
		PlaylistID:   active.PlaylistID,
		Priority:     active.Priority,
		Items:        out,
	}, nil
}
