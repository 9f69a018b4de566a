package report

import "time"

// DefaultTimezone is the single civil timezone all day arithmetic uses.
// Estate records carry date-only values keyed to local operations, so
// "today" must not drift with the server's zone.
const DefaultTimezone = "Asia/Jakarta"

// Clock supplies the current instant and the report timezone. The zero
// source defaults to time.Now so production call sites stay short; tests
// pin Now to a fixed instant.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClock builds a Clock for the named timezone, falling back to UTC when
// the zone cannot be loaded.
func NewClock(timezone string) Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Clock) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}

// Today returns midnight of the current civil day in the report timezone.
// A record timestamped exactly at midnight belongs to the day that starts
// there, never to the day that ends.
func (c Clock) Today() time.Time {
	return DateOf(c.now().In(c.location()))
}

// Tomorrow returns midnight of the next civil day.
func (c Clock) Tomorrow() time.Time {
	return c.Today().AddDate(0, 0, 1)
}

// DateOf strips the time-of-day component, keeping the civil date in t's
// own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
