package printjob

import (
	"strings"

	"github.com/neriko/catprint/internal/ble"
)

// Match resolves target against scan results. Preference order: exact
// identifier, then normalized identifier (platforms render the same
// address with differing case and separators), then exact display name.
func Match(devices []ble.Device, target string) (ble.Device, bool) {
	for _, d := range devices {
		if d.ID == target {
			return d, true
		}
	}
	normTarget := normalizeID(target)
	for _, d := range devices {
		if normalizeID(d.ID) == normTarget {
			return d, true
		}
	}
	for _, d := range devices {
		if d.Name == target {
			return d, true
		}
	}
	return ble.Device{}, false
}

// normalizeID lowercases and strips everything but letters and digits.
func normalizeID(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
