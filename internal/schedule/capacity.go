package schedule

import (
	"fmt"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

// WindowSeconds is the length of a daily window in seconds. Overnight
// windows wrap: (24h - start) + end. Equal bounds are a zero-length window.
func WindowSeconds(start, end TimeOfDay) int {
	s, e := start.Minutes(), end.Minutes()
	if e >= s {
		return (e - s) * 60
	}
	return (minutesPerDay - s + e) * 60
}

// PlaylistSeconds is the total runtime of a playlist's items.
func PlaylistSeconds(items []model.PlaylistItem) int {
	total := 0
	for _, it := range items {
		total += it.Duration
	}
	return total
}

// CheckCapacity rejects a window too short for the playlist's total
// runtime. The error names the shortfall.
func CheckCapacity(start, end TimeOfDay, playlistSeconds int) error {
	windowSeconds := WindowSeconds(start, end)
	if playlistSeconds > windowSeconds {
		return &ValidationError{Message: fmt.Sprintf(
			"playlist runs %ds but the %s-%s window only holds %ds (short by %ds)",
			playlistSeconds, start, end, windowSeconds, playlistSeconds-windowSeconds)}
	}
	return nil
}
