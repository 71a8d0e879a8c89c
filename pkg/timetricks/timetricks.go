// Package timetricks has small helpers for working with calendar days.
package timetricks

import (
	"time"
)

const (
	dayFormat       = "20060102"
	prettyDayFormat = "01/02"
)

// SameDay reports whether two times fall on the same calendar day.
func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

func Today(t time.Time) bool {
	return SameDay(t, time.Now())
}

func Tomorrow(t time.Time) bool {
	return Today(t.Add(-24 * time.Hour))
}

// TrimClock removes the wall clock component of t, leaving midnight of the
// same day.
func TrimClock(t time.Time) time.Time {
	h, m, s := t.Clock()
	return t.Add(-1 *
		(time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second))
}

func SetClock(t time.Time, hour, minute time.Duration) time.Time {
	return TrimClock(t).Add(hour*time.Hour + minute*time.Minute)
}

// Day renders t's calendar day relative to now: "today", "tomorrow", or a
// short month/day form.
func Day(t time.Time) string {
	switch {
	case Today(t):
		return "today"
	case Tomorrow(t):
		return "tomorrow"
	default:
		return t.Format(prettyDayFormat)
	}
}

// UniqueDay returns a string representation of t that is unique by the day.
// For instance, two seperate times on the same calendar day return identical
// strings.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}
