package schedule

import "github.com/Nixie-Tech-LLC/triton/internal/model"

// Conflict identifies the existing schedule a candidate collides with.
type Conflict struct {
	ScheduleID int
	SeriesID   string
	DayOfWeek  int
	StartTime  string
	EndTime    string
}

// FindConflict checks a candidate schedule against the existing schedules of
// the same screen and returns the first collision, or nil.
//
// Two schedules collide when they share a weekday, their date ranges
// intersect (inclusive, nil bound unbounded) and their daily time windows
// intersect. Time windows compare half-open, [start, end), so back-to-back
// schedules that touch at a boundary minute do not collide. Inactive rows
// never collide. Rows with the candidate's own id, and rows in
// excludeSeries, are skipped; pass the series id when re-checking a whole
// series so siblings do not trip over each other.
func FindConflict(candidate model.Schedule, existing []model.Schedule, excludeSeries string) (*Conflict, error) {
	if !candidate.IsActive {
		return nil, nil
	}
	cw, err := parseWindow(candidate)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if candidate.ID != 0 && e.ID == candidate.ID {
			continue
		}
		if excludeSeries != "" && e.SeriesID == excludeSeries {
			continue
		}
		if !e.IsActive || e.DayOfWeek != candidate.DayOfWeek {
			continue
		}
		ew, err := parseWindow(e)
		if err != nil {
			// a stored row that no longer parses cannot be compared;
			// it is excluded from selection too
			continue
		}
		if !dateRangesIntersect(cw.startDate, cw.endDate, ew.startDate, ew.endDate) {
			continue
		}
		if timeWindowsOverlap(cw.start, cw.end, ew.start, ew.end) {
			return &Conflict{
				ScheduleID: e.ID,
				SeriesID:   e.SeriesID,
				DayOfWeek:  e.DayOfWeek,
				StartTime:  e.StartTime,
				EndTime:    e.EndTime,
			}, nil
		}
	}
	return nil, nil
}

func dateRangesIntersect(aStart, aEnd, bStart, bEnd *Date) bool {
	if aStart != nil && bEnd != nil && bEnd.Before(*aStart) {
		return false
	}
	if bStart != nil && aEnd != nil && aEnd.Before(*bStart) {
		return false
	}
	return true
}

// spans breaks a daily window into half-open minute intervals, splitting
// overnight windows at midnight. An equal-bounds window yields the empty
// interval [t, t).
func spans(start, end TimeOfDay) [][2]int {
	s, e := start.Minutes(), end.Minutes()
	if s <= e {
		return [][2]int{{s, e}}
	}
	return [][2]int{{s, minutesPerDay}, {0, e}}
}

func timeWindowsOverlap(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	for _, a := range spans(aStart, aEnd) {
		if a[0] >= a[1] {
			continue
		}
		for _, b := range spans(bStart, bEnd) {
			if b[0] >= b[1] {
				continue
			}
			if a[0] < b[1] && b[0] < a[1] {
				return true
			}
		}
	}
	return false
}
