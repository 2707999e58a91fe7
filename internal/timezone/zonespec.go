package timezone

import "strings"

// ZoneSeparator joins departure and arrival zones in the persisted
// timezone column. Triple pipe cannot occur in an IANA identifier.
const ZoneSeparator = "|||"

// EncodeZones packs one or two IANA identifiers into a single stored
// value. A flight can depart and land in different zones; everything else
// uses one zone for both ends, so an equal or empty arrival zone collapses
// to the single form.
func EncodeZones(start, end string) string {
	if end == "" || end == start {
		return start
	}
	return start + ZoneSeparator + end
}

// DecodeZones splits a stored zone spec back into (start, end). A single
// stored zone applies to both ends; an empty spec decodes to empty pair.
func DecodeZones(spec string) (start, end string) {
	if spec == "" {
		return "", ""
	}
	if i := strings.Index(spec, ZoneSeparator); i >= 0 {
		return spec[:i], spec[i+len(ZoneSeparator):]
	}
	return spec, spec
}
