package calculator

import (
	"regexp"
	"strconv"
	"strings"
)

var legacyVolumePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?(ml|kg|l|g)?`)

// ParseLegacyVolume infers the unit volume in milliliters from a legacy item
// code or name such as "FCM500", "Curd450g" or "UHT1L". It exists only to
// backfill Item.UnitVolumeML; nothing reads volume from names at runtime.
//
// Units: l and kg are liters, ml and g are milliliters. A bare number under
// 10 is taken as liters, anything else as milliliters.
func ParseLegacyVolume(name string) (int, bool) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, false
	}
	m := legacyVolumePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil || num <= 0 {
		return 0, false
	}

	var ml float64
	switch strings.ToLower(m[2]) {
	case "l", "kg":
		ml = num * 1000
	case "ml", "g":
		ml = num
	default:
		if num < 10 {
			ml = num * 1000
		} else {
			ml = num
		}
	}
	return int(ml + 0.5), true
}
