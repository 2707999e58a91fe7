// Package timezone converts between stored UTC instants and the local
// wall-clock times travelers see. All times in the database are UTC; the
// runtime tz database is the only offset oracle, and the UTC->local
// formatter is inverted numerically rather than via a second offset table.
package timezone

import (
	"time"
)

// precisionFloor is the residual below which the inversion is considered
// converged. Output resolution is whole minutes.
const precisionFloor = time.Minute

// loadLocation resolves an IANA identifier, degrading to UTC for anything
// the runtime cannot resolve. Display then shows UTC-labeled times instead
// of failing the view; the stored instant is untouched.
func loadLocation(zone string) *time.Location {
	if zone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FromUTC formats an instant in the given zone and reads back the
// wall-clock fields. This direction is exact.
func FromUTC(t time.Time, zone string) WallClock {
	return readWall(t.In(loadLocation(zone)))
}

// ToUTC returns the UTC instant that observes as wc in the given zone.
//
// The runtime only exposes "format an instant in a zone", so the inverse is
// solved by search: guess that wc is already UTC, format the guess in the
// zone, shift by the signed wall-clock difference, repeat. Offsets are
// bounded and monotonic within a pass, so two passes converge; a final
// check applies one more correction if the residual still exceeds a minute.
//
// Never fails. Inside a spring-forward gap the returned instant formats to
// the adjacent valid wall clock; during a fall-back overlap the earlier of
// the two valid instants wins by construction of the convergence order.
func ToUTC(wc WallClock, zone string) time.Time {
	guess := time.Date(wc.Year, time.Month(wc.Month), wc.Day, wc.Hour, wc.Minute, 0, 0, time.UTC)
	loc := loadLocation(zone)
	if loc == time.UTC {
		return guess
	}

	for pass := 0; pass < 2; pass++ {
		guess = guess.Add(wc.sub(readWall(guess.In(loc))))
	}

	if residual := wc.sub(readWall(guess.In(loc))); residual >= precisionFloor || residual <= -precisionFloor {
		guess = guess.Add(residual)
	}
	return guess
}

// DateOnly is the calendar date of t as observed in zone, in the
// "yyyy-mm-dd" form used as a day-bucket key. Lexicographic order on these
// keys is chronological.
func DateOnly(t time.Time, zone string) string {
	return t.In(loadLocation(zone)).Format("2006-01-02")
}

// FormatDisplay renders a read-only "h:mm AM/PM ZZZ" local time, e.g.
// "5:30 PM CEST".
func FormatDisplay(t time.Time, zone string) string {
	return t.In(loadLocation(zone)).Format("3:04 PM MST")
}
