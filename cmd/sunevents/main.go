// Command sunevents prints daylight summaries for a place from the terminal.
//
//	sunevents -lat 52.22977 -lon 21.01178 -tz Europe/Warsaw -days 3
//	sunevents -q "Warsaw" -days 3
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kmorling/sundial/pkg/daylight"
	"github.com/kmorling/sundial/pkg/geocode"
	"github.com/kmorling/sundial/pkg/sunevents"
)

func main() {
	lat := flag.Float64("lat", sunevents.SanFrancisco.Lat, "latitude in degrees")
	lon := flag.Float64("lon", sunevents.SanFrancisco.Long, "longitude in degrees")
	query := flag.String("q", "", "place name to geocode instead of lat/lon")
	days := flag.Int("days", 7, "number of days to print")
	tz := flag.String("tz", "Local", "IANA timezone for the output")
	flag.Parse()

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unknown timezone %q: %v\n", *tz, err)
		os.Exit(1)
	}

	place := sunevents.Place{Lat: *lat, Long: *lon, Location: loc}
	if *query != "" {
		result, err := geocode.Lookup(&geocode.Query{Name: *query})
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not find %q: %v\n", *query, err)
			os.Exit(1)
		}
		place.Name = result.DisplayName
		place.Lat = float64(result.Lat)
		place.Long = float64(result.Lon)
	}

	summaries, err := daylight.Summarize(time.Now(), *days, place)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if place.Name != "" {
		fmt.Printf("%s (%.5f, %.5f)\n", place.Name, place.Lat, place.Long)
	}
	for i := range summaries {
		fmt.Println(summaries[i].String())
	}
}
