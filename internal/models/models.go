package models

import (
	"slices"
	"time"
)

// Mood is the self-reported mood recorded with a daily baseline.
type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodNeutral  Mood = "neutral"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
)

// Moods lists the accepted moods from best to worst.
var Moods = []Mood{MoodGreat, MoodGood, MoodNeutral, MoodTired, MoodStressed}

// Valid reports whether m is one of the accepted moods.
func (m Mood) Valid() bool {
	return slices.Contains(Moods, m)
}

// Baseline is the physiological baseline logged at the start of a day.
type Baseline struct {
	LoggedAt time.Time `json:"logged_at"`
	// WakeTime is the local HH:MM time the user woke up.
	WakeTime string `json:"wake_time"`
	Mood     Mood   `json:"mood"`
	// HRV is the heart rate variability in milliseconds.
	HRV int `json:"hrv"`
	// RHR is the resting heart rate in beats per minute.
	RHR int `json:"rhr"`
	// SleepHours is the previous night's sleep duration.
	SleepHours float64 `json:"sleep_duration"`
}
