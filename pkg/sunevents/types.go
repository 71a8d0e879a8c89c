package sunevents

import (
	"fmt"
	"time"

	"github.com/kmorling/sundial/pkg/suntime"
)

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	Name      string
	Lat, Long float64
	Location  *time.Location
}

var (
	SanFrancisco = Place{
		"San Francisco",
		37.7749, -122.4194,
		locationOrPanic("America/Los_Angeles"),
	}
	Warsaw = Place{
		"Warsaw",
		52.234, 21.0,
		locationOrPanic("Europe/Warsaw"),
	}
)

// SunEvents is a time series of SunEvent.
type SunEvents []SunEvent

// SunEvent is a single sunrise or sunset (or dawn or dusk, when computed at
// a twilight zenith).
type SunEvent struct {
	Time  time.Time     `json:"time"`
	Event suntime.Event `json:"event"`
}

func (s *SunEvent) String() string {
	return fmt.Sprintf("%s %s", s.Time.Format(time.RFC822), s.Event)
}

func locationOrPanic(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
