package visualize

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kmorling/sundial/pkg/suntime"
)

func mustSun(t *testing.T, lat, lon float64) *suntime.Sun {
	t.Helper()
	s, err := suntime.New(lat, lon)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEncode(t *testing.T) {
	sun := mustSun(t, 37.7749, -122.4194)
	img := NewStrip(sun, time.UTC)
	img.SetDate(time.Date(2024, time.March, 11, 15, 30, 0, 0, time.UTC))

	var buf bytes.Buffer
	n, err := img.Encode(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n == 0 {
		t.Error("encoded zero bytes")
	}

	svg := buf.String()
	for _, want := range []string{
		`<svg viewBox="0 0 1200 300"`,
		`class="night"`,
		`class="twilight"`,
		`class="daytime"`,
		`class="altitude"`,
		`class="spline"`,
		`</svg>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestEncodePolarDay(t *testing.T) {
	sun := mustSun(t, 90, 0)
	img := NewStrip(sun, time.UTC)
	img.SetDate(time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC))

	if alt := sun.Altitude(time.Date(2024, time.June, 21, 12, 0, 0, 0, time.UTC)); alt <= 0 {
		t.Fatalf("midsummer noon altitude at the pole = %v, want above the horizon", alt)
	}

	var buf bytes.Buffer
	if _, err := img.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svg := buf.String()
	if !strings.Contains(svg, `class="daytime"`) {
		t.Fatal("midnight sun rendered with no daytime band")
	}
	if !strings.Contains(svg, `<rect class="daytime" fill="lightyellow" x="0" y="0" width="1200"`) {
		t.Error("midnight sun daytime band does not span the whole strip")
	}
}

func TestEncodePolarNight(t *testing.T) {
	sun := mustSun(t, 90, 0)
	img := NewStrip(sun, time.UTC)
	img.SetDate(time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	if _, err := img.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svg := buf.String(); strings.Contains(svg, `class="daytime"`) {
		t.Error("polar night should not include a daytime band")
	}
}
