// Package visualize renders a day of sun data as an SVG strip: night
// shading, the civil twilight band, the daylight window, and a smoothed
// solar altitude curve.
package visualize

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kmorling/sundial/pkg/splines"
	"github.com/kmorling/sundial/pkg/suntime"
	"github.com/kmorling/sundial/pkg/timetricks"
)

const (
	width  = 1200
	height = 300

	altitudeSampleStep = time.Hour
)

// Strip draws a single day of daylight at a coordinate.
type Strip struct {
	date time.Time
	sun  *suntime.Sun
	loc  *time.Location
}

func NewStrip(sun *suntime.Sun, loc *time.Location) *Strip {
	if loc == nil {
		loc = time.UTC
	}
	return &Strip{sun: sun, loc: loc}
}

func (img *Strip) SetDate(t time.Time) {
	img.date = timetricks.TrimClock(t.In(img.loc))
}

func (img *Strip) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil {
			err = nexterr
		}
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height))

	// Night background first; everything else is layered over it.
	io(fmt.Fprintf(w, `<rect class="night" fill="midnightblue" x="0" y="0" width="%d" height="%d"/>`,
		width, height))

	// Civil twilight band, then the daylight window over it.
	if dawn, dusk, err := img.window(suntime.CivilZenith); err == nil {
		io(img.band(w, "twilight", "steelblue", dawn, dusk))
	}
	if rise, set, err := img.window(suntime.DefaultZenith); err == nil {
		io(img.band(w, "daytime", "lightyellow", rise, set))
	} else if img.sun.Altitude(img.date.Add(12*time.Hour)) >= 0 {
		// No horizon crossing, but the sun is up at noon: midnight sun,
		// so the whole strip is daylight.
		io(img.band(w, "daytime", "lightyellow", img.date, img.date.Add(24*time.Hour)))
	}

	// Horizon line.
	io(fmt.Fprintf(w, `<line class="horizon" stroke="gray" x1="0" y1="%d" x2="%d" y2="%d"/>`,
		altitudeToY(0), width, altitudeToY(0)))

	// Smoothed altitude curve across the whole day.
	samples := img.altitudeSamples()
	spline := splines.CurvesBetween(samples)
	points := splines.Discrete(spline, width/10)
	io(fmt.Fprintf(w, `<polyline class="altitude" fill="none" stroke="orange" points="`))
	for i, alt := range points {
		io(fmt.Fprintf(w, "%d,%d ", i*10, altitudeToY(alt)))
	}
	io(fmt.Fprintf(w, `"/>`))

	// Insert spline data as JSON.
	io(fmt.Fprintf(w, `<text class="spline" visibility="hidden">`))
	json.NewEncoder(w).Encode(spline)
	io(fmt.Fprintf(w, `</text>`))

	// Insert date of this graph as unix.
	io(fmt.Fprintf(w, `<text class="unixtime" visibility="hidden">%d</text>`, img.date.Unix()))

	io(fmt.Fprintf(w, `</svg>`))

	return n, err
}

// window computes the pair of horizon crossings for the strip's date at the
// given zenith.
func (img *Strip) window(zenith float64) (start, end time.Time, err error) {
	start, err = img.sun.EventTime(img.date, suntime.Rise, zenith, img.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = img.sun.EventTime(img.date, suntime.Set, zenith, img.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (img *Strip) band(w io.Writer, class, fill string, start, end time.Time) (int, error) {
	x1, x2 := img.timeToX(start), img.timeToX(end)
	return fmt.Fprintf(w, `<rect class="%s" fill="%s" x="%d" y="0" width="%d" height="%d"/>`,
		class, fill, x1, x2-x1, height)
}

func (img *Strip) altitudeSamples() []splines.Sample {
	var samples []splines.Sample
	end := img.date.Add(24 * time.Hour)
	for t := img.date; !t.After(end); t = t.Add(altitudeSampleStep) {
		samples = append(samples, splines.Sample{Time: t, Value: img.sun.Altitude(t)})
	}
	return samples
}

func (img *Strip) timeToX(t time.Time) int {
	return int(t.Unix()-img.date.Unix()) * width / (60 * 60 * 24)
}

// altitudeToY maps degrees above the horizon to a pixel row, with the
// horizon at mid-height.
func altitudeToY(alt float64) int {
	return int(float64(height)/2 - alt*(float64(height)/180))
}
