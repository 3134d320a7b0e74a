package util

import "time"

// Clock returns the current time; services hold one so tests can pin it.
type Clock func() time.Time

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}
