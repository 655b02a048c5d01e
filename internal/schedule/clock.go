package schedule

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock "HH:MM" value parsed into integers. Comparing
// Minutes() preserves the ordering of the zero-padded string form.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts exactly "HH:MM", zero-padded, hour 00-23,
// minute 00-59. "8:00" and "24:00" are rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return TimeOfDay{}, fmt.Errorf("invalid time %q: want HH:MM", s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: hour 00-23, minute 00-59", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Minutes returns the offset from midnight.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// Date is a "YYYY-MM-DD" calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts exactly "YYYY-MM-DD" and rejects impossible dates.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// LocalInstant is an instant projected into a schedule's timezone: the
// local calendar date, local weekday and local wall clock. Every window
// comparison runs against one of these, never against server-local or UTC
// components, so a schedule in Asia/Manila matches Manila evenings even
// when the server runs in UTC.
type LocalInstant struct {
	Date    Date
	Weekday int // 0 = Sunday
	Time    TimeOfDay
}

// ProjectInstant derives the LocalInstant for an absolute instant in loc.
func ProjectInstant(at time.Time, loc *time.Location) LocalInstant {
	lt := at.In(loc)
	return LocalInstant{
		Date:    Date{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()},
		Weekday: int(lt.Weekday()),
		Time:    TimeOfDay{Hour: lt.Hour(), Minute: lt.Minute()},
	}
}
