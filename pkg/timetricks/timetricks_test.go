package timetricks

import (
	"fmt"
	"testing"
	"time"
)

func ExampleDay() {
	now := time.Now()
	fmt.Println(Day(now))
	fmt.Println(Day(now.Add(24 * time.Hour)))
	fmt.Println(Day(time.Date(1999, time.January, 5, 12, 0, 0, 0, time.Local)))
	// Output:
	// today
	// tomorrow
	// 01/05
}

func TestTrimClock(t *testing.T) {
	in := time.Date(2024, time.March, 11, 17, 45, 12, 0, time.UTC)
	got := TrimClock(in)
	want := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, time.March, 11, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.March, 11, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2024, time.March, 12, 0, 1, 0, 0, time.UTC)
	if !SameDay(morning, evening) {
		t.Error("morning and evening of the same date should match")
	}
	if SameDay(evening, nextDay) {
		t.Error("midnight rollover should not match")
	}
}

func TestUniqueDay(t *testing.T) {
	a := UniqueDay(time.Date(2024, time.March, 11, 6, 0, 0, 0, time.UTC))
	b := UniqueDay(time.Date(2024, time.March, 11, 18, 0, 0, 0, time.UTC))
	if a != b {
		t.Errorf("two times on the same day produced %q and %q", a, b)
	}
}
