package timezone

import (
	"fmt"
	"time"
)

// WallClock is a zone-less local date-time, minute precision.
// It only exists at the API boundary (form input / display); storage is
// always a UTC instant plus a zone spec.
type WallClock struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// readWall pulls the wall-clock fields out of an already-localized time.
func readWall(t time.Time) WallClock {
	return WallClock{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// String renders the wall clock as "2006-01-02 15:04".
func (w WallClock) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", w.Year, w.Month, w.Day, w.Hour, w.Minute)
}

// ParseWallClock accepts "2006-01-02 15:04" or "2006-01-02T15:04".
func ParseWallClock(s string) (WallClock, error) {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04", s)
	}
	if err != nil {
		return WallClock{}, fmt.Errorf("invalid wall-clock value %q: use YYYY-MM-DD HH:MM", s)
	}
	return readWall(t), nil
}

// sub returns the signed duration from got to want, weighted at
// day/hour/minute granularity. Month and year differences collapse to a
// single day step: a real zone offset never exceeds ~26 hours, so when the
// months disagree the two wall clocks sit on adjacent calendar days.
func (w WallClock) sub(got WallClock) time.Duration {
	var days int
	switch {
	case w.Year == got.Year && w.Month == got.Month:
		days = w.Day - got.Day
	case w.Year > got.Year || (w.Year == got.Year && w.Month > got.Month):
		days = 1
	default:
		days = -1
	}
	return time.Duration(days)*24*time.Hour +
		time.Duration(w.Hour-got.Hour)*time.Hour +
		time.Duration(w.Minute-got.Minute)*time.Minute
}
