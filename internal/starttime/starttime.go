// Package starttime computes the synchronized start instant shared by the
// host scripts and every node initializer of a single run.
package starttime

import (
	"fmt"
	"time"
)

// Instants are rendered RFC 1123 with a numeric zone, always in UTC, so
// every consumer parses the same value regardless of its own locale or
// timezone (e.g. "Wed, 02 Oct 2024 13:45:00 +0000").
const Layout = time.RFC1123Z

// At renders now + delay as a start instant.
func At(now time.Time, delay time.Duration) string {
	return now.Add(delay).UTC().Format(Layout)
}

// Compute returns the start instant delaySeconds from now. A negative delay
// is a configuration error.
func Compute(delaySeconds int) (string, error) {
	if delaySeconds < 0 {
		return "", fmt.Errorf("scenario delay cannot be negative (got %d)", delaySeconds)
	}

	return At(time.Now(), time.Duration(delaySeconds)*time.Second), nil
}
