package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCity(t *testing.T) {
	cases := []struct {
		name    string
		address string
		want    string
	}{
		{"us city state zip", "123 Main St, Springfield, IL 62704", "Springfield"},
		{"us zip+4", "1 Infinite Loop, Cupertino, CA 95014-2083", "Cupertino"},
		{"uk postcode", "221B Baker Street, London NW1 6XE", "London"},
		{"italian province code", "Via Roma 1, 50123 Firenze FI, Italy", "Firenze"},
		{"continental no province", "Mannerheimintie 1, 00100 Helsinki, Finland", "Helsinki"},
		{"bare segments fallback", "Piazza del Duomo, Florence, Italy", "Florence"},
		{"country only suffix skipped", "Somewhere, Italy", "Somewhere"},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"digits everywhere", "12345, 67890", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractCity(tc.address))
		})
	}
}

func TestExtractCityStrategyOrder(t *testing.T) {
	// A US-style match wins over the last-segment fallback even when a
	// plausible trailing segment exists.
	got := ExtractCity("500 5th Ave, New York, NY 10110, United States")
	assert.Equal(t, "New York", got)
}
