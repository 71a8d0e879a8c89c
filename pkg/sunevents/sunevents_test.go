package sunevents

import (
	"fmt"
	"testing"
	"time"

	"github.com/kmorling/sundial/pkg/suntime"

	"github.com/sixdouglas/suncalc"
)

func ExampleGetSunEvents() {
	start := time.Date(2014, time.October, 3, 0, 0, 0, 0, Warsaw.Location)
	events, err := GetSunEvents(start, 3*24*time.Hour, Warsaw)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, e := range events {
		fmt.Printf("%s\n", e.String())
	}
	// Output:
	// 03 Oct 14 06:39 CEST sunrise
	// 03 Oct 14 18:09 CEST sunset
	// 04 Oct 14 06:41 CEST sunrise
	// 04 Oct 14 18:07 CEST sunset
	// 05 Oct 14 06:43 CEST sunrise
	// 05 Oct 14 18:04 CEST sunset
}

func TestEventsAlternateAndAscend(t *testing.T) {
	start := time.Date(2024, time.March, 11, 0, 0, 0, 0, SanFrancisco.Location)
	events, err := GetSunEvents(start, 5*24*time.Hour, SanFrancisco)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 10; len(events) != want {
		t.Fatalf("got %d events, want %d", len(events), want)
	}
	for i, e := range events {
		wantEvent := suntime.Rise
		if i%2 == 1 {
			wantEvent = suntime.Set
		}
		if e.Event != wantEvent {
			t.Errorf("event %d is %s, want %s", i, e.Event, wantEvent)
		}
		if i > 0 && !events[i-1].Time.Before(e.Time) {
			t.Errorf("event %d at %s does not follow event %d at %s",
				i, e.Time, i-1, events[i-1].Time)
		}
	}
}

func TestPolarDaysAreSkipped(t *testing.T) {
	pole := Place{"North Pole", 90, 0, time.UTC}
	start := time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)
	events, err := GetSunEvents(start, 3*24*time.Hour, pole)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events during polar night, want none", len(events))
	}
}

func TestBadPlace(t *testing.T) {
	bad := Place{"nowhere", 95, 0, time.UTC}
	if _, err := GetSunEvents(time.Now(), 24*time.Hour, bad); err == nil {
		t.Error("expected an error for latitude 95")
	}
}

func TestTwilightBracketsDaylight(t *testing.T) {
	start := time.Date(2024, time.March, 11, 0, 0, 0, 0, SanFrancisco.Location)
	day, err := GetSunEvents(start, 24*time.Hour, SanFrancisco)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	civil, err := GetTwilightEvents(start, 24*time.Hour, SanFrancisco, suntime.CivilZenith)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(day) != 2 || len(civil) != 2 {
		t.Fatalf("got %d day and %d twilight events, want 2 and 2", len(day), len(civil))
	}
	if !civil[0].Time.Before(day[0].Time) {
		t.Errorf("civil dawn %s should precede sunrise %s", civil[0].Time, day[0].Time)
	}
	if !civil[1].Time.After(day[1].Time) {
		t.Errorf("civil dusk %s should follow sunset %s", civil[1].Time, day[1].Time)
	}
}

// TestAgainstSuncalc compares a week of events against the suncalc port,
// which implements a different (transit-based) formulation. Agreement within
// a few minutes is all that is expected of either.
func TestAgainstSuncalc(t *testing.T) {
	const tolerance = 10 * time.Minute
	start := time.Date(2024, time.March, 11, 0, 0, 0, 0, SanFrancisco.Location)
	events, err := GetSunEvents(start, 7*24*time.Hour, SanFrancisco)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, e := range events {
		times := suncalc.GetTimes(e.Time, SanFrancisco.Lat, SanFrancisco.Long)
		key := suncalc.Sunrise
		if e.Event == suntime.Set {
			key = suncalc.Sunset
		}
		want := times[key].Value
		diff := e.Time.Sub(want)
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			t.Errorf("%s at %s differs from suncalc's %s by %s",
				e.Event, e.Time, want, diff)
		}
	}
}
