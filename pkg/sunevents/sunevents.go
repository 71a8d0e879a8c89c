package sunevents

import (
	"math"
	"time"

	"github.com/kmorling/sundial/pkg/suntime"
)

// GetSunEvents returns an ordered list of sun events from the starting time
// through the given duration at place. Days where an event does not occur
// (polar day or polar night) contribute no entry, so the list may be shorter
// than two events per day.
func GetSunEvents(start time.Time, duration time.Duration, place Place) (SunEvents, error) {
	return eventsAtZenith(start, duration, place, suntime.DefaultZenith)
}

// GetTwilightEvents is GetSunEvents at a caller-chosen zenith angle, for
// example suntime.CivilZenith for civil dawn and dusk.
func GetTwilightEvents(start time.Time, duration time.Duration, place Place, zenith float64) (SunEvents, error) {
	return eventsAtZenith(start, duration, place, zenith)
}

func eventsAtZenith(start time.Time, duration time.Duration, place Place, zenith float64) (SunEvents, error) {
	sun, err := suntime.New(place.Lat, place.Long)
	if err != nil {
		return nil, err
	}
	loc := place.Location
	if loc == nil {
		loc = time.UTC
	}

	numDays := int(math.Ceil(duration.Hours() / 24))
	events := make(SunEvents, 0, numDays*2)

	// Walk calendar days in the place's own zone so each pair of events is
	// anchored to the local day the caller would name.
	day := start.In(loc)
	for i := 0; i < numDays; i++ {
		for _, ev := range []suntime.Event{suntime.Rise, suntime.Set} {
			at, err := sun.EventTime(day, ev, zenith, loc)
			if err != nil {
				// Never rises or never sets; skip the day's entry.
				continue
			}
			events = append(events, SunEvent{Time: at, Event: ev})
		}
		day = day.AddDate(0, 0, 1)
	}
	return events, nil
}
