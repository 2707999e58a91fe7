package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		wc   WallClock
		zone string
	}{
		{"rome summer", WallClock{2025, 6, 14, 18, 30}, "Europe/Rome"},
		{"rome winter", WallClock{2025, 1, 14, 18, 30}, "Europe/Rome"},
		{"new york", WallClock{2025, 3, 20, 9, 15}, "America/New_York"},
		{"half hour offset", WallClock{2025, 6, 15, 10, 0}, "Asia/Kolkata"},
		{"quarter hour offset", WallClock{2025, 6, 15, 10, 0}, "Asia/Kathmandu"},
		{"west of dateline", WallClock{2025, 12, 31, 23, 45}, "Pacific/Auckland"},
		{"midnight month boundary", WallClock{2025, 7, 1, 0, 0}, "America/Los_Angeles"},
		{"new year boundary", WallClock{2026, 1, 1, 0, 30}, "Asia/Tokyo"},
		{"utc", WallClock{2025, 2, 28, 23, 59}, "UTC"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromUTC(ToUTC(tc.wc, tc.zone), tc.zone)
			assert.Equal(t, tc.wc, got)
		})
	}
}

func TestToUTCKnownOffsets(t *testing.T) {
	// 18:30 CEST (UTC+2) is 16:30Z
	got := ToUTC(WallClock{2025, 6, 14, 18, 30}, "Europe/Rome")
	assert.Equal(t, time.Date(2025, 6, 14, 16, 30, 0, 0, time.UTC), got)

	// 10:00 IST (UTC+5:30) is 04:30Z
	got = ToUTC(WallClock{2025, 6, 15, 10, 0}, "Asia/Kolkata")
	assert.Equal(t, time.Date(2025, 6, 15, 4, 30, 0, 0, time.UTC), got)
}

func TestToUTCFallBackPicksEarlierInstant(t *testing.T) {
	// 2025-11-02 01:30 happens twice in New York: 05:30Z (EDT) and
	// 06:30Z (EST). Convergence lands on the earlier one.
	got := ToUTC(WallClock{2025, 11, 2, 1, 30}, "America/New_York")
	assert.Equal(t, time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC), got)
}

func TestToUTCSpringForwardGap(t *testing.T) {
	// 2025-03-09 02:30 does not exist in New York. The converter still
	// returns an instant; formatted back it sits on one side of the gap.
	got := ToUTC(WallClock{2025, 3, 9, 2, 30}, "America/New_York")
	wall := FromUTC(got, "America/New_York")
	require.Equal(t, 30, wall.Minute)
	assert.Contains(t, []int{1, 3}, wall.Hour)
}

func TestToUTCUnknownZoneDegradesToUTC(t *testing.T) {
	wc := WallClock{2025, 5, 1, 12, 0}
	got := ToUTC(wc, "Mars/Olympus_Mons")
	assert.Equal(t, time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), got)
	assert.Equal(t, wc, FromUTC(got, "Mars/Olympus_Mons"))
}

func TestCrossZoneFlightSameLocalClock(t *testing.T) {
	// A flight leaving New York at 05:00Z and landing in Los Angeles at
	// 08:00Z shows the same local clock at both ends: three hours in the
	// air, three zones crossed.
	dep := FromUTC(time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC), "America/New_York")
	arr := FromUTC(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), "America/Los_Angeles")
	assert.Equal(t, dep, arr)
	assert.Equal(t, 2025, dep.Year)
	assert.Equal(t, 3, dep.Month)
	assert.Equal(t, 10, dep.Day)
}

func TestDateOnly(t *testing.T) {
	// Late evening UTC is already the next day in Tokyo.
	instant := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-02", DateOnly(instant, "Asia/Tokyo"))
	assert.Equal(t, "2025-06-01", DateOnly(instant, "UTC"))
	assert.Equal(t, "2025-06-01", DateOnly(instant, "not-a-zone"))
}

func TestFormatDisplay(t *testing.T) {
	instant := time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, "12:00 PM EST", FormatDisplay(instant, "America/New_York"))
	assert.Equal(t, "5:00 PM UTC", FormatDisplay(instant, ""))
}

func TestParseWallClock(t *testing.T) {
	wc, err := ParseWallClock("2025-06-01 09:05")
	require.NoError(t, err)
	assert.Equal(t, WallClock{2025, 6, 1, 9, 5}, wc)

	wc, err = ParseWallClock("2025-06-01T09:05")
	require.NoError(t, err)
	assert.Equal(t, WallClock{2025, 6, 1, 9, 5}, wc)

	_, err = ParseWallClock("June 1st, 9am")
	assert.Error(t, err)
}
