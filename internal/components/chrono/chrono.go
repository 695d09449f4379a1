package chrono

import (
	"pricescraper/lib/calendar"
	"time"
)

// API is what anything that depends on the system clock should use.
type API interface {
	Now() time.Time
	Location() *time.Location
}

// Today is the current calendar day in the clock's location.
func Today(clock API) calendar.Date {
	return calendar.Today(clock.Now(), clock.Location())
}

type StandardImpl struct {
	location *time.Location
}

// NewStandardImpl loads the named IANA zone, an empty name means time.Local.
func NewStandardImpl(zone string) (StandardImpl, error) {
	if zone == "" {
		return StandardImpl{location: time.Local}, nil
	}
	location, err := time.LoadLocation(zone)
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

func (f Fixed) Location() *time.Location {
	return f.At.Location()
}
