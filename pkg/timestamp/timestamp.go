// Package timestamp recovers a best-effort event time from heterogeneous
// MQTT payloads: structured values, numeric epochs, ISO-8601 strings or raw
// bytes. Extraction never fails; it degrades to the current time.
package timestamp

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// candidateKeys are probed in order before any other field is considered.
var candidateKeys = [...]string{"timestamp", "time", "ts", "t"}

const (
	// epochScanFloor is the lower bound for a top-level numeric field to be
	// considered a plausible epoch value during the fallback scan.
	epochScanFloor = 1_000_000_000
	// epochMillisFloor disambiguates epoch units: values above it are
	// milliseconds, values at or below it are seconds. Intentionally a
	// different constant from epochScanFloor.
	epochMillisFloor = 1_000_000_000_000
)

// ErrNoTimestamp reports a value that does not encode a recognizable
// timestamp.
var ErrNoTimestamp = errors.New("value does not encode a timestamp")

// isoLayouts cover ISO-8601 date-times with and without an explicit offset.
// Offsetless forms parse as UTC.
var isoLayouts = [...]string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Extract returns the event time carried by payload, probing in priority
// order: well-known mapping keys, any plausible epoch-valued field, then the
// payload itself as text. It always returns a timestamp, falling back to the
// current UTC time.
func Extract(payload any) time.Time {
	if m, ok := payload.(map[string]any); ok {
		for _, key := range candidateKeys {
			v, present := m[key]
			if !present {
				continue
			}
			if t, err := ParseValue(v); err == nil {
				return t
			}
		}
		// No obvious timestamp field; scan for a plausible epoch value.
		// Keys are sorted because Go maps have no stable iteration order.
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			n, ok := asNumber(m[k])
			if !ok || n <= epochScanFloor {
				continue
			}
			if t, err := ParseValue(n); err == nil {
				return t
			}
		}
	}

	var s string
	switch pv := payload.(type) {
	case []byte:
		s = strings.TrimSpace(strings.ToValidUTF8(string(pv), ""))
	case string:
		s = strings.TrimSpace(pv)
	}
	if s != "" {
		if t, err := ParseValue(s); err == nil {
			return t
		}
	}

	return time.Now().UTC()
}

// ParseValue interprets v as a timestamp. Numbers and digit-only strings are
// Unix epochs (milliseconds when greater than epochMillisFloor, seconds
// otherwise); other strings must be ISO-8601, where a trailing "Z" is
// equivalent to "+00:00". The result is normalized to UTC.
func ParseValue(v any) (time.Time, error) {
	switch tv := v.(type) {
	case float64:
		return fromEpoch(tv), nil
	case int:
		return fromEpoch(float64(tv)), nil
	case int64:
		return fromEpoch(float64(tv)), nil
	case string:
		return parseString(tv)
	default:
		return time.Time{}, ErrNoTimestamp
	}
}

func fromEpoch(n float64) time.Time {
	if n > epochMillisFloor {
		n /= 1000
	}
	sec, frac := math.Modf(n)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
}

func parseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrNoTimestamp
	}
	// Digit-only strings are always epochs, never ISO dates.
	if isDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, ErrNoTimestamp
		}
		if n > epochMillisFloor {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrNoTimestamp
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
