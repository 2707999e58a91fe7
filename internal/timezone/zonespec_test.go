package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeZonePair(t *testing.T) {
	spec := EncodeZones("America/New_York", "America/Los_Angeles")
	assert.Equal(t, "America/New_York|||America/Los_Angeles", spec)

	start, end := DecodeZones(spec)
	assert.Equal(t, "America/New_York", start)
	assert.Equal(t, "America/Los_Angeles", end)
}

func TestEncodeCollapsesSingleZone(t *testing.T) {
	assert.Equal(t, "Europe/Rome", EncodeZones("Europe/Rome", ""))
	assert.Equal(t, "Europe/Rome", EncodeZones("Europe/Rome", "Europe/Rome"))

	start, end := DecodeZones("Europe/Rome")
	assert.Equal(t, "Europe/Rome", start)
	assert.Equal(t, "Europe/Rome", end)
}

func TestDecodeEmpty(t *testing.T) {
	start, end := DecodeZones("")
	assert.Empty(t, start)
	assert.Empty(t, end)
}
