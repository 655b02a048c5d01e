package schedule

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/triton/internal/model"
)

// ActiveAt picks the schedule that should be playing at the given instant,
// or nil when nothing matches. Matching runs in loc, the screen's timezone.
// The highest priority wins; equal priorities resolve to the lowest id so
// repeated calls always agree.
func ActiveAt(schedules []model.Schedule, at time.Time, loc *time.Location) *model.Schedule {
	local := ProjectInstant(at, loc)
	var best *model.Schedule
	for i := range schedules {
		s := &schedules[i]
		if !s.IsActive {
			continue
		}
		w, err := parseWindow(*s)
		if err != nil {
			log.Warn().Err(err).Int("schedule_id", s.ID).Msg("skipping malformed schedule row")
			continue
		}
		if !w.contains(local) {
			continue
		}
		if best == nil || s.Priority > best.Priority ||
			(s.Priority == best.Priority && s.ID < best.ID) {
			best = s
		}
	}
	return best
}
