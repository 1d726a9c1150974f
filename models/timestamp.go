package models

import "time"

// TimestampLayout is the ISO-8601 form every timestamp column is stored in
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp renders t in UTC using TimestampLayout
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Now returns the current time as a stored timestamp
func Now() string {
	return Timestamp(time.Now())
}

// ParseTimestamp accepts any RFC 3339 timestamp, including TimestampLayout
func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
