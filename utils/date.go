package utils

import (
	"strings"
	"time"
)

// BackendTimeLayout is how the quiz API writes timestamps: ISO 8601 in UTC without an offset.
const BackendTimeLayout = "2006-01-02T15:04:05"

func FromUTCToTimezone(utcTime time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return utcTime
	}
	return utcTime.In(loc)
}

// ParseBackendTime reads an API timestamp. Fractional seconds and an explicit offset are accepted.
func ParseBackendTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}
	return time.ParseInLocation(BackendTimeLayout, value, time.UTC)
}

// LocalizeBackendTime rewrites an API timestamp in timezone. Values that do not parse are
// returned unchanged.
func LocalizeBackendTime(value, timezone string) string {
	t, err := ParseBackendTime(value)
	if err != nil {
		return value
	}
	return FromUTCToTimezone(t, timezone).Format(time.RFC3339)
}
