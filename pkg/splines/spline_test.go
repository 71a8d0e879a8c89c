package splines

import (
	"fmt"
	"math"
	"testing"
	"time"
)

func ExampleDiscrete() {
	tstart := time.Date(2021, time.April, 3, 10, 30, 0, 0, time.Local)
	samples := []Sample{{
		Time:  tstart,
		Value: 10,
	}, {
		Time:  tstart.Add(1000 * time.Hour),
		Value: 1,
	}}
	discrete := Discrete(CurvesBetween(samples), 10)
	for i := range discrete {
		fmt.Println(math.Round(discrete[i]))
	}
	// Output:
	// 10
	// 10
	// 9
	// 8
	// 6
	// 5
	// 3
	// 2
	// 1
	// 1
}

func TestEndpoints(t *testing.T) {
	tstart := time.Date(2024, time.March, 11, 6, 0, 0, 0, time.UTC)
	samples := []Sample{
		{Time: tstart, Value: -10},
		{Time: tstart.Add(6 * time.Hour), Value: 45},
		{Time: tstart.Add(12 * time.Hour), Value: -10},
	}
	spl := CurvesBetween(samples)
	if len(spl) != 2 {
		t.Fatalf("got %d curves, want 2", len(spl))
	}
	for _, s := range samples {
		if got := spl.Eval(s.Time); math.Abs(got-s.Value) > 1e-6 {
			t.Errorf("Eval(%s) = %v, want %v", s.Time, got, s.Value)
		}
	}
}

func TestEvalOutsideDomain(t *testing.T) {
	tstart := time.Date(2024, time.March, 11, 6, 0, 0, 0, time.UTC)
	spl := CurvesBetween([]Sample{
		{Time: tstart, Value: 0},
		{Time: tstart.Add(time.Hour), Value: 1},
	})
	if got := spl.Eval(tstart.Add(-time.Minute)); !math.IsNaN(got) {
		t.Errorf("Eval before domain = %v, want NaN", got)
	}
	if got := spl.Eval(tstart.Add(2 * time.Hour)); !math.IsNaN(got) {
		t.Errorf("Eval after domain = %v, want NaN", got)
	}
}

func TestTooFewSamples(t *testing.T) {
	if spl := CurvesBetween([]Sample{{Time: time.Now(), Value: 1}}); spl != nil {
		t.Errorf("one sample produced a spline: %v", spl)
	}
}
