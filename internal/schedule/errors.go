package schedule

import "fmt"

// NotFoundError means a referenced playlist, screen or schedule does not
// exist. Mapped to 404 at the HTTP boundary.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ValidationError means the request shape is malformed or the playlist does
// not fit the window. Mapped to 422.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError means the candidate window overlaps another active schedule
// on the same screen. Mapped to 409; the payload names the other schedule
// so the caller can resolve the collision.
type ConflictError struct {
	ScreenID int
	With     Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("screen %d already has schedule %d on weekday %d between %s and %s",
		e.ScreenID, e.With.ScheduleID, e.With.DayOfWeek, e.With.StartTime, e.With.EndTime)
}
