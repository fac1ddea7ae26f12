package application

import "time"

// nowFunc is injected into services so tests can pin the clock.
type nowFunc func() time.Time

func defaultNow() time.Time {
	return time.Now().UTC()
}
