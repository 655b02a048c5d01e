package schedule

import "github.com/Nixie-Tech-LLC/triton/internal/model"

// IsValidTime reports whether s is a well-formed zero-padded HH:MM value.
func IsValidTime(s string) bool {
	_, err := ParseTimeOfDay(s)
	return err == nil
}

// IsValidDayOfWeek reports whether n is a weekday index, 0 = Sunday.
func IsValidDayOfWeek(n int) bool { return n >= 0 && n <= 6 }

// WithinTimeWindow reports whether now falls inside [start, end], inclusive
// on both bounds. end < start means the window crosses midnight, in which
// case the match is now >= start or now <= end. Equal bounds take the
// non-overnight branch and match only that exact minute.
func WithinTimeWindow(now, start, end TimeOfDay) bool {
	n, s, e := now.Minutes(), start.Minutes(), end.Minutes()
	if s <= e {
		return s <= n && n <= e
	}
	return n >= s || n <= e
}

// WithinDateWindow reports whether d falls inside [start, end], inclusive.
// A nil bound is unbounded on that side.
func WithinDateWindow(d Date, start, end *Date) bool {
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && end.Before(d) {
		return false
	}
	return true
}

// window is a schedule's recurring shape with its string fields parsed.
type window struct {
	day        int
	start, end TimeOfDay
	startDate  *Date
	endDate    *Date
}

func parseWindow(s model.Schedule) (window, error) {
	var w window
	var err error
	if !IsValidDayOfWeek(s.DayOfWeek) {
		return w, &ValidationError{Message: "day_of_week must be between 0 and 6"}
	}
	w.day = s.DayOfWeek
	if w.start, err = ParseTimeOfDay(s.StartTime); err != nil {
		return w, &ValidationError{Message: err.Error()}
	}
	if w.end, err = ParseTimeOfDay(s.EndTime); err != nil {
		return w, &ValidationError{Message: err.Error()}
	}
	if s.StartDate != nil {
		d, err := ParseDate(*s.StartDate)
		if err != nil {
			return w, &ValidationError{Message: err.Error()}
		}
		w.startDate = &d
	}
	if s.EndDate != nil {
		d, err := ParseDate(*s.EndDate)
		if err != nil {
			return w, &ValidationError{Message: err.Error()}
		}
		w.endDate = &d
	}
	if w.startDate != nil && w.endDate != nil && w.endDate.Before(*w.startDate) {
		return w, &ValidationError{Message: "start_date must not be after end_date"}
	}
	return w, nil
}

func (w window) contains(at LocalInstant) bool {
	return at.Weekday == w.day &&
		WithinDateWindow(at.Date, w.startDate, w.endDate) &&
		WithinTimeWindow(at.Time, w.start, w.end)
}

// Matches reports whether the schedule's recurring window covers the given
// local instant. Malformed windows report the validation problem.
func Matches(s model.Schedule, at LocalInstant) (bool, error) {
	w, err := parseWindow(s)
	if err != nil {
		return false, err
	}
	return w.contains(at), nil
}
