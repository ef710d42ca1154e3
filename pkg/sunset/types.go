package sunset

import (
	"fmt"
	"time"

	"github.com/spencer-p/tidenotify/pkg/timetricks"
)

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	Lat, Long float64
	Location  *time.Location
}

// NewPlace builds a Place, resolving the zone name with time.LoadLocation.
func NewPlace(lat, long float64, zone string) (Place, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Place{}, fmt.Errorf("unknown time zone %q: %w", zone, err)
	}
	return Place{lat, long, loc}, nil
}

// SunEvents is a time series of SunEvent.
type SunEvents []SunEvent

// SunEvent is a sunrise or sunset event.
type SunEvent struct {
	Time  time.Time
	Event Event
}

func (s SunEvent) String() string {
	return fmt.Sprintf("%s: %s", s.Event, timetricks.Clock(s.Time))
}

// Event encodes a sunrise or sunset event.
type Event bool

const (
	Sunrise Event = true
	Sunset  Event = false
)

func (e Event) String() string {
	if e == Sunrise {
		return "Sunrise"
	}
	return "Sunset"
}
