package itinerary

import (
	"regexp"
	"strings"
)

// City extraction from free-text postal addresses. Each strategy handles
// one address family and returns "" when it doesn't apply; they run in
// priority order and the whole thing is best-effort: a miss means the
// container lands in the overflow group, never an error.

type cityExtractor func(string) string

var cityExtractors = []cityExtractor{
	usCityStateZip,
	ukPostcodeCity,
	postalCodeCity,
	lastAddressSegment,
}

// ExtractCity runs the extractor stack over an address.
func ExtractCity(address string) string {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return ""
	}
	for _, extract := range cityExtractors {
		if city := extract(addr); city != "" {
			return city
		}
	}
	return ""
}

// "123 Main St, Springfield, IL 62704" -> Springfield
var usRe = regexp.MustCompile(`([A-Za-z][A-Za-z .'-]*?),?\s+[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`)

func usCityStateZip(addr string) string {
	m := usRe.FindStringSubmatch(addr)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// "221B Baker Street, London NW1 6XE" -> London
var ukRe = regexp.MustCompile(`([A-Za-z][A-Za-z .'-]*?)\s+[A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2}\b`)

func ukPostcodeCity(addr string) string {
	m := ukRe.FindStringSubmatch(addr)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Continental style, postal code before the city:
// "Via Roma 1, 50123 Firenze FI, Italy" -> Firenze
var postalRe = regexp.MustCompile(`\b\d{4,5}\s+([A-Za-zÀ-ž][A-Za-zÀ-ž .'-]*)`)

func postalCodeCity(addr string) string {
	m := postalRe.FindStringSubmatch(addr)
	if m == nil {
		return ""
	}
	city := strings.TrimSpace(m[1])
	// Drop a trailing province code ("Firenze FI")
	fields := strings.Fields(city)
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		if len(last) == 2 && last == strings.ToUpper(last) {
			city = strings.Join(fields[:len(fields)-1], " ")
		}
	}
	return city
}

// Trailing country names and codes that should not be mistaken for a
// city by the fallback strategy.
var countrySuffixes = map[string]bool{
	"usa": true, "us": true, "uk": true, "italy": true, "italia": true,
	"france": true, "spain": true, "germany": true, "japan": true,
	"united states": true, "united kingdom": true, "netherlands": true,
	"switzerland": true, "austria": true, "portugal": true,
}

// Fallback: the last comma-separated segment that looks like a bare city
// name (letters only, not a country).
func lastAddressSegment(addr string) string {
	segments := strings.Split(addr, ",")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := strings.TrimSpace(segments[i])
		if seg == "" || strings.ContainsAny(seg, "0123456789") {
			continue
		}
		if countrySuffixes[strings.ToLower(seg)] {
			continue
		}
		return seg
	}
	return ""
}
