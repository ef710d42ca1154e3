package sunset

import (
	"time"

	"github.com/spencer-p/tidenotify/pkg/timetricks"

	"github.com/keep94/sunrise"
)

// GetSunEvents returns the sunrise and sunset at place on the calendar day of
// day, in that order, with times in place's zone. Days without a sunrise or
// sunset (polar summer and winter) yield no events.
func GetSunEvents(day time.Time, place Place) SunEvents {
	day = timetricks.TrimClock(day.In(place.Location))

	var s sunrise.Sunrise
	s.Around(place.Lat, place.Long, day)

	// The sunrise package is not very clean with its dates; walk to the
	// requested day, giving up after a few steps.
	for i := 0; i < 3 && s.Sunrise().In(place.Location).Before(day); i++ {
		s.AddDays(1)
	}
	for i := 0; i < 3 && s.Sunrise().In(place.Location).After(day.Add(24*time.Hour)); i++ {
		s.AddDays(-1)
	}

	rise, set := s.Sunrise().In(place.Location), s.Sunset().In(place.Location)
	if rise.IsZero() || set.IsZero() || !timetricks.SameDay(rise, day) {
		return nil
	}
	return SunEvents{
		{rise, Sunrise},
		{set, Sunset},
	}
}
