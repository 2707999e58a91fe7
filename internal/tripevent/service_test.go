package tripevent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEventArrivalZoneOnly(t *testing.T) {
	// Only the arrival zone is known: it must govern both ends and be
	// persisted, so the stored instants hydrate back on the same clock
	// they were entered on.
	s := &Service{}
	e, err := s.buildEvent("Red-eye", TypeTravel, SubTypeFlight, "JFK → LAX", "",
		"2025-06-01 10:00", "2025-06-01 13:00", "", "America/New_York",
		nil, nil, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, e.Timezone)
	assert.Equal(t, "America/New_York", *e.Timezone)

	// 10:00 EDT == 14:00Z
	assert.Equal(t, time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC), e.StartDatetime.UTC())
	require.NotNil(t, e.EndDatetime)
	assert.Equal(t, time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC), e.EndDatetime.UTC())

	resp := ToResponse(e)
	assert.Equal(t, "2025-06-01 10:00", resp.StartLocal)
	assert.Equal(t, "2025-06-01 13:00", resp.EndLocal)
	assert.Equal(t, "America/New_York", resp.ZoneStart)
}

func TestBuildEventRejectsInvalidType(t *testing.T) {
	s := &Service{}
	_, err := s.buildEvent("X", "picnic", "", "", "",
		"2025-06-01 10:00", "", "", "", nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestBuildEventEndBeforeStart(t *testing.T) {
	s := &Service{}
	_, err := s.buildEvent("X", TypeActivity, "", "", "",
		"2025-06-01 10:00", "2025-06-01 09:00", "UTC", "", nil, nil, nil, nil)
	assert.Error(t, err)
}
