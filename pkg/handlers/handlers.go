// Package handlers implements the HTTP API: sun times and event series for
// a coordinate or a named place, an SVG daylight strip, and a per-user
// saved place.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/kmorling/sundial/pkg/cache"
	"github.com/kmorling/sundial/pkg/geocode"
	"github.com/kmorling/sundial/pkg/metrics"
	"github.com/kmorling/sundial/pkg/sunevents"
	"github.com/kmorling/sundial/pkg/suntime"
	"github.com/kmorling/sundial/pkg/visualize"

	"github.com/gorilla/mux"
)

const (
	day            = 24 * time.Hour
	forecastLength = 7 * day

	dateFormat = "2006-01-02"
	maxDays    = 31
)

func Register(r *mux.Router) {
	r.Handle("/", makeIndexHandler())
	r.Handle("/api/v1/sun", makeServeSun())
	r.Handle("/api/v1/events", makeServeEvents())
	r.Handle("/api/v1/daylight.svg", makeServeStrip())
	r.Handle("/api/v1/place", makeServePlace())
}

// SunResponse is the JSON reply for /api/v1/sun.
type SunResponse struct {
	Date      string     `json:"date"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Place     string     `json:"place,omitempty"`
	Timezone  string     `json:"timezone"`
	Sunrise   *time.Time `json:"sunrise,omitempty"`
	Sunset    *time.Time `json:"sunset,omitempty"`
	DayLength string     `json:"day_length,omitempty"`
	Polar     string     `json:"polar,omitempty"`
}

func makeServeSun() http.Handler {
	// cache for slightly less than one day so daily clients don't see stale
	// data
	timeCache := cache.NewTimed(23 * time.Hour)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		place, err := resolvePlace(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}
		date, err := parseDate(r, place.Location)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}
		zenith, err := parseZenith(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}

		key, cacheable := cacheKey(r, date)
		if cached, ok := timeCache.Get(key); cacheable && ok {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
		sun, err := suntime.New(place.Lat, place.Long)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}

		resp := SunResponse{
			Date:      date.Format(dateFormat),
			Latitude:  place.Lat,
			Longitude: place.Long,
			Place:     place.Name,
			Timezone:  place.Location.String(),
		}

		rise, riseErr := sun.EventTime(date, suntime.Rise, zenith, place.Location)
		observe(suntime.Rise, riseErr)
		set, setErr := sun.EventTime(date, suntime.Set, zenith, place.Location)
		observe(suntime.Set, setErr)

		switch {
		case riseErr == nil && setErr == nil:
			resp.Sunrise = &rise
			resp.Sunset = &set
			resp.DayLength = set.Sub(rise).String()
		case riseErr != nil && setErr != nil:
			// Polar day or night; where the sun sits at local noon settles
			// which.
			y, m, d := date.Date()
			noon := time.Date(y, m, d, 12, 0, 0, 0, place.Location)
			if sun.Altitude(noon) < 0 {
				resp.Polar = "night"
			} else {
				resp.Polar = "day"
			}
		case riseErr == nil:
			resp.Sunrise = &rise
		default:
			resp.Sunset = &set
		}

		var toCache bytes.Buffer
		mw := io.MultiWriter(w, &toCache)
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(mw).Encode(resp); err != nil {
			log.Printf("Failed to encode JSON result: %+v", err)
			return
		}

		// save the result asynchonously as the cache may block
		if cacheable {
			go func() {
				timeCache.Set(key, toCache.Bytes())
			}()
		}
	})
}

func makeServeEvents() http.Handler {
	timeCache := cache.NewTimed(23 * time.Hour)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		place, err := resolvePlace(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}

		start := time.Now()
		key, cacheable := cacheKey(r, start.In(place.Location))
		if cached, ok := timeCache.Get(key); cacheable && ok {
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
		duration := forecastLength
		if dayCount := r.FormValue("days"); dayCount != "" {
			n, err := strconv.Atoi(dayCount)
			if err != nil || n < 1 || n > maxDays {
				httpError(w, http.StatusBadRequest, fmt.Errorf("days must be 1-%d", maxDays))
				return
			}
			duration = time.Duration(n) * day
		}

		events, err := sunevents.GetSunEvents(start, duration, place)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}

		// duplicate the http response onto a buffer for the cache
		var toCache bytes.Buffer
		mw := io.MultiWriter(w, &toCache)

		outputFormat := r.FormValue("o")
		if outputFormat == "text" {
			w.Header().Add("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			for i := range events {
				fmt.Fprintf(mw, "%s\n", events[i].String())
			}
		} else {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if err := json.NewEncoder(mw).Encode(events); err != nil {
				log.Printf("Failed to encode JSON result: %+v", err)
				return
			}
		}

		if cacheable {
			go func() {
				timeCache.Set(key, toCache.Bytes())
			}()
		}
	})
}

func makeServeStrip() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		place, err := resolvePlace(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}
		date, err := parseDate(r, place.Location)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}
		sun, err := suntime.New(place.Lat, place.Long)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}

		img := visualize.NewStrip(sun, place.Location)
		img.SetDate(date)
		w.Header().Add("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		if _, err := img.Encode(w); err != nil {
			log.Printf("Failed to encode SVG: %+v", err)
		}
	})
}

func makeIndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "text/plain")
		fmt.Fprintln(w, "sundial: sunrise and sunset times")
		fmt.Fprintln(w, "  GET /api/v1/sun?lat=&lon=&date=&tz=")
		fmt.Fprintln(w, "  GET /api/v1/events?lat=&lon=&days=&tz=")
		fmt.Fprintln(w, "  GET /api/v1/daylight.svg?lat=&lon=&date=&tz=")
		fmt.Fprintln(w, "  POST /api/v1/place")
	})
}

// resolvePlace extracts the place a request refers to: explicit lat/lon
// parameters, a q=name to geocode, or the session user's saved place.
func resolvePlace(r *http.Request) (sunevents.Place, error) {
	loc := time.UTC
	if name := r.FormValue("tz"); name != "" {
		parsed, err := time.LoadLocation(name)
		if err != nil {
			return sunevents.Place{}, fmt.Errorf("unknown timezone %q", name)
		}
		loc = parsed
	}

	latStr, lonStr := r.FormValue("lat"), r.FormValue("lon")
	if latStr != "" || lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return sunevents.Place{}, fmt.Errorf("bad latitude %q", latStr)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return sunevents.Place{}, fmt.Errorf("bad longitude %q", lonStr)
		}
		return sunevents.Place{Lat: lat, Long: lon, Location: loc}, nil
	}

	if name := r.FormValue("q"); name != "" {
		result, err := geocode.Lookup(&geocode.Query{Name: name})
		if err != nil {
			return sunevents.Place{}, err
		}
		return sunevents.Place{
			Name:     result.DisplayName,
			Lat:      float64(result.Lat),
			Long:     float64(result.Lon),
			Location: loc,
		}, nil
	}

	if place, ok := savedPlace(r); ok {
		if place.Location == nil || r.FormValue("tz") != "" {
			place.Location = loc
		}
		return place, nil
	}

	return sunevents.Place{}, errors.New("no place given: pass lat and lon, q, or save a place")
}

// cacheKey builds the response cache key for a request resolved to a
// calendar day. Folding the day in makes date-less "today" entries roll
// over at local midnight instead of lingering until cache expiry.
// Requests that name no place resolve through the session, so their bare
// URL is not a usable key and they are not cacheable.
func cacheKey(r *http.Request, day time.Time) (key string, cacheable bool) {
	key = fmt.Sprintf("%s %s %s", r.Method, r.URL, day.Format(dateFormat))
	cacheable = r.FormValue("lat") != "" || r.FormValue("q") != ""
	return key, cacheable
}

// parseDate reads the date parameter as a calendar day in loc, defaulting to
// the current day. "Now" is resolved per request, never cached.
func parseDate(r *http.Request, loc *time.Location) (time.Time, error) {
	str := r.FormValue("date")
	if str == "" {
		return time.Now().In(loc), nil
	}
	parsed, err := time.ParseInLocation(dateFormat, str, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q, want YYYY-MM-DD", str)
	}
	return parsed, nil
}

func parseZenith(r *http.Request) (float64, error) {
	str := r.FormValue("zenith")
	if str == "" {
		return suntime.DefaultZenith, nil
	}
	zenith, err := strconv.ParseFloat(str, 64)
	if err != nil || zenith <= 0 || zenith >= 180 {
		return 0, fmt.Errorf("bad zenith %q", str)
	}
	return zenith, nil
}

func observe(ev suntime.Event, err error) {
	switch {
	case err == nil:
		metrics.ObserveSunOutcome(ev.String(), "observed")
	case errors.Is(err, suntime.ErrNeverRises):
		metrics.ObserveSunOutcome(ev.String(), "never_rises")
	case errors.Is(err, suntime.ErrNeverSets):
		metrics.ObserveSunOutcome(ev.String(), "never_sets")
	}
}

func httpError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)
	fmt.Fprintf(w, "%v", err)
	log.Printf("Request failed (%d): %v", code, err)
}
