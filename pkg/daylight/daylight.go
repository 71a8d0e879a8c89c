// Package daylight summarizes sun events into per-day daylight figures:
// sunrise, sunset, day length, and the polar special cases.
package daylight

import (
	"fmt"
	"time"

	"github.com/kmorling/sundial/pkg/sunevents"
	"github.com/kmorling/sundial/pkg/suntime"
	"github.com/kmorling/sundial/pkg/timetricks"
)

const timeFmt = "3:04 PM"

// Polar classifies a day without a sunrise and sunset.
type Polar string

const (
	PolarNone  Polar = ""
	PolarDay   Polar = "day"
	PolarNight Polar = "night"
)

// Summary describes the daylight of one calendar day at a place.
type Summary struct {
	// Date is local midnight of the summarized day.
	Date time.Time `json:"date"`

	Sunrise   time.Time     `json:"sunrise"`
	Sunset    time.Time     `json:"sunset"`
	DayLength time.Duration `json:"day_length"`

	// Polar is set when the day has no sunrise and no sunset.
	Polar Polar `json:"polar,omitempty"`
}

// TimeRange is a half-open window of wall clock time.
type TimeRange struct {
	Start, End time.Time
}

// Summarize computes daily summaries for the given number of days starting
// at start's calendar day in the place's zone.
func Summarize(start time.Time, days int, place sunevents.Place) ([]Summary, error) {
	sun, err := suntime.New(place.Lat, place.Long)
	if err != nil {
		return nil, err
	}
	loc := place.Location
	if loc == nil {
		loc = time.UTC
	}

	summaries := make([]Summary, 0, days)
	day := start.In(loc)
	for i := 0; i < days; i++ {
		summaries = append(summaries, summarizeDay(sun, day, loc))
		day = day.AddDate(0, 0, 1)
	}
	return summaries, nil
}

func summarizeDay(sun *suntime.Sun, day time.Time, loc *time.Location) Summary {
	y, m, d := day.Date()
	s := Summary{Date: time.Date(y, m, d, 0, 0, 0, 0, loc)}

	rise, riseErr := sun.SunriseTime(day, loc)
	set, setErr := sun.SunsetTime(day, loc)
	switch {
	case riseErr == nil && setErr == nil:
		s.Sunrise = rise
		s.Sunset = set
		s.DayLength = set.Sub(rise)
	case riseErr != nil && setErr != nil:
		// No crossing at all. Whether the day is all light or all dark is
		// settled by where the sun sits at local noon.
		noon := s.Date.Add(12 * time.Hour)
		if sun.Altitude(noon) < 0 {
			s.Polar = PolarNight
		} else {
			s.Polar = PolarDay
			s.DayLength = 24 * time.Hour
		}
	case riseErr == nil:
		// The sun rises but does not set again; the midnight sun begins
		// today. Daylight runs from sunrise to the end of the day.
		s.Sunrise = rise
		s.DayLength = s.Date.AddDate(0, 0, 1).Sub(rise)
	default:
		// The midnight sun ends today: no sunrise, but the sun does set.
		s.Sunset = set
		s.DayLength = set.Sub(s.Date)
	}
	return s
}

// GoldenHours reports the first and last hour of daylight, the windows
// photographers care about. ok is false on polar days and nights.
func (s Summary) GoldenHours() (morning, evening TimeRange, ok bool) {
	if s.Polar != PolarNone || s.Sunrise.IsZero() || s.Sunset.IsZero() {
		return TimeRange{}, TimeRange{}, false
	}
	window := time.Hour
	if s.DayLength < 2*time.Hour {
		window = s.DayLength / 2
	}
	morning = TimeRange{Start: s.Sunrise, End: s.Sunrise.Add(window)}
	evening = TimeRange{Start: s.Sunset.Add(-window), End: s.Sunset}
	return morning, evening, true
}

func (s *Summary) String() string {
	day := timetricks.Day(s.Date)
	switch {
	case s.Polar == PolarDay:
		return fmt.Sprintf("%s, the sun never sets", day)
	case s.Polar == PolarNight:
		return fmt.Sprintf("%s, the sun never rises", day)
	case s.Sunset.IsZero():
		return fmt.Sprintf("%s, sunrise at %s and the sun stays up",
			day, s.Sunrise.Format(timeFmt))
	case s.Sunrise.IsZero():
		return fmt.Sprintf("%s, the sun finally sets at %s",
			day, s.Sunset.Format(timeFmt))
	}
	return fmt.Sprintf("%s, sunrise at %s and sunset at %s (%s of daylight)",
		day,
		s.Sunrise.Format(timeFmt),
		s.Sunset.Format(timeFmt),
		s.DayLength)
}
