// Package suntime computes approximate sunrise and sunset times for a
// coordinate on a calendar date. The formula is a closed-form approximation
// good to about a minute; it is not an ephemeris and does not model the
// atmosphere beyond a fixed zenith offset.
package suntime

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// DefaultZenith places the center of the sun's disc at the visible
	// horizon. It is the geometric 90 degrees plus an empirical 0.8 degree
	// correction for refraction and the solar radius.
	DefaultZenith = 90.8

	// Zenith angles for the conventional twilight thresholds. Passing one of
	// these to EventTime yields dawn or dusk instead of sunrise or sunset.
	CivilZenith        = 96
	NauticalZenith     = 102
	AstronomicalZenith = 108

	toRad = math.Pi / 180
)

var (
	// ErrNeverRises reports that the sun stays below the zenith threshold
	// for the whole date (polar night). This is an expected outcome near the
	// poles, not a fault.
	ErrNeverRises = errors.New("the sun never rises at this location on this date")

	// ErrNeverSets reports that the sun stays above the zenith threshold for
	// the whole date (polar day).
	ErrNeverSets = errors.New("the sun never sets at this location on this date")

	// ErrInvalidCoordinate reports a latitude or longitude outside the valid
	// range.
	ErrInvalidCoordinate = errors.New("coordinate out of range")
)

// Event selects which horizon crossing to compute.
type Event bool

const (
	Rise Event = true
	Set  Event = false
)

func (e Event) String() string {
	if e == Rise {
		return "sunrise"
	}
	return "sunset"
}

// MarshalJSON encodes the event as its name rather than a bare bool.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *Event) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("event %q not a string: %w", buf, err)
	}
	switch s {
	case "sunrise":
		*e = Rise
	case "sunset":
		*e = Set
	default:
		return fmt.Errorf("invalid event %q", s)
	}
	return nil
}

// Sun computes sun event times for a single coordinate. A Sun holds only the
// immutable coordinate, so it may be shared freely between goroutines.
type Sun struct {
	lat, lon float64
	lngHour  float64
}

// New returns a Sun for the coordinate. Latitude must be in [-90, 90] and
// longitude in [-180, 180]; anything else would feed garbage through the
// trigonometry, so it is rejected up front.
func New(lat, lon float64) (*Sun, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, lon)
	}
	return &Sun{lat: lat, lon: lon, lngHour: lon / 15}, nil
}

// Latitude returns the coordinate's latitude in degrees.
func (s *Sun) Latitude() float64 { return s.lat }

// Longitude returns the coordinate's longitude in degrees.
func (s *Sun) Longitude() float64 { return s.lon }

// EventHour computes the UTC hour of day in [0, 24) at which the event
// occurs on the given calendar date, at a caller-chosen zenith angle. It
// reports ok=false when the sun never crosses the zenith threshold that day,
// letting callers branch without handling an error.
func (s *Sun) EventHour(date time.Time, ev Event, zenith float64) (hour float64, ok bool) {
	return s.utcHour(date, ev, zenith)
}

// EventTime computes the timestamp of the event on the given calendar date.
// A nil loc yields UTC. The returned error is ErrNeverRises or ErrNeverSets
// when the event does not occur; both are expected outcomes the caller must
// handle.
func (s *Sun) EventTime(date time.Time, ev Event, zenith float64, loc *time.Location) (time.Time, error) {
	ut, ok := s.utcHour(date, ev, zenith)
	if !ok {
		if ev == Rise {
			return time.Time{}, ErrNeverRises
		}
		return time.Time{}, ErrNeverSets
	}

	// The formula's terms are only meaningful modulo one day, so the UTC
	// hour alone cannot say which UTC date the event falls on. The event
	// does belong to the queried date in local solar time, so wrapping the
	// solar hour into [0, 24) recovers the day carry: a San Francisco sunset
	// lands on the next UTC date, a Sydney sunrise on the previous one.
	solar := forceRange(ut+s.lngHour, 24)
	offset := solar - s.lngHour

	y, m, d := date.Date()
	at := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(offset * float64(time.Hour)))
	if loc != nil {
		at = at.In(loc)
	}
	return at, nil
}

// SunriseTime computes sunrise on the given date at the default zenith.
// A nil loc yields UTC.
func (s *Sun) SunriseTime(date time.Time, loc *time.Location) (time.Time, error) {
	return s.EventTime(date, Rise, DefaultZenith, loc)
}

// SunsetTime computes sunset on the given date at the default zenith.
// A nil loc yields UTC.
func (s *Sun) SunsetTime(date time.Time, loc *time.Location) (time.Time, error) {
	return s.EventTime(date, Set, DefaultZenith, loc)
}

// utcHour runs the approximation pipeline and reports the event's UTC hour
// of day in [0, 24), rounded to two decimal hours. ok is false when the
// event does not occur on that date.
func (s *Sun) utcHour(date time.Time, ev Event, zenith float64) (hour float64, ok bool) {
	n := float64(date.YearDay())

	// First-pass estimate of the event in fractional days, seeding the
	// anomaly calculation. 6h for rises, 18h for sets.
	base := 18.0
	if ev == Rise {
		base = 6.0
	}
	t := n + ((base - s.lngHour) / 24)

	// Mean anomaly, then true ecliptic longitude.
	m := 0.9856*t - 3.289
	l := m + 1.916*math.Sin(toRad*m) + 0.020*math.Sin(toRad*2*m) + 282.634
	l = forceRange(l, 360)

	// Declination and the hour angle cosine at the requested zenith.
	sinDec := 0.39782 * math.Sin(toRad*l)
	cosDec := math.Cos(math.Asin(sinDec))
	cosH := (math.Cos(toRad*zenith) - sinDec*math.Sin(toRad*s.lat)) /
		(cosDec * math.Cos(toRad*s.lat))

	// Outside [-1, 1] the sun never reaches the zenith threshold that day.
	// Checked before Acos to keep the math in its domain.
	if cosH > 1 || cosH < -1 {
		return 0, false
	}

	// Right ascension, matched to the same quadrant as L, in hours.
	ra := math.Atan(0.91764*math.Tan(toRad*l)) / toRad
	ra = forceRange(ra, 360)
	lQuad := math.Floor(l/90) * 90
	raQuad := math.Floor(ra/90) * 90
	ra = (ra + lQuad - raQuad) / 15

	h := math.Acos(cosH) / toRad
	if ev == Rise {
		h = 360 - h
	}
	h /= 15

	// Local mean time of the event, then back to UTC. Rounding to two
	// decimal hours (~36s) happens before wrapping so that a value rounding
	// up to exactly 24 lands on hour zero.
	lmt := h + ra - 0.06571*t - 6.622
	ut := math.Round((lmt-s.lngHour)*100) / 100
	return forceRange(ut, 24), true
}

// Altitude reports the sun's approximate altitude above the horizon in
// degrees at the given instant, from the same declination series as the rise
// and set pipeline. It ignores the equation of time, which is fine for
// drawing a daily arc but not for precise work.
func (s *Sun) Altitude(at time.Time) float64 {
	utc := at.UTC()
	hours := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600
	t := float64(utc.YearDay()) + hours/24

	m := 0.9856*t - 3.289
	l := forceRange(m+1.916*math.Sin(toRad*m)+0.020*math.Sin(toRad*2*m)+282.634, 360)
	dec := math.Asin(0.39782 * math.Sin(toRad*l))

	// Hour angle from local solar time, 15 degrees per hour off solar noon.
	ha := toRad * 15 * (hours + s.lngHour - 12)

	lat := toRad * s.lat
	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(ha)
	return math.Asin(sinAlt) / toRad
}

// forceRange wraps v into [0, max). Every value fed to it is within one
// period of the range, so a single correction suffices.
func forceRange(v, max float64) float64 {
	if v < 0 {
		return v + max
	} else if v >= max {
		return v - max
	}
	return v
}
