package config

import (
	"net/url"
	"regexp"
	"slices"
	"time"

	"github.com/ayoisaiah/ultradian/internal/notify"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

var (
	// Segment length constraints in minutes.
	minDuration = 0
	maxDuration = 720 // 12 hours

	minCycles = 1
	maxCycles = 12

	storageBackends = []string{"bolt", "disk"}

	// Color format validation.
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateDurations(); err != nil {
		return err
	}

	if err := c.validateSettings(); err != nil {
		return err
	}

	if err := c.validateDisplay(); err != nil {
		return err
	}

	if c.Notifications.Sound != "" {
		if err := notify.ValidateSound(c.Notifications.Sound); err != nil {
			return err
		}
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errInvalidBaseURL.Fmt(c.API.BaseURL)
	}

	return nil
}

func (c *Config) validateDurations() error {
	durations := []struct {
		name  string
		value int
	}{
		{"grog", c.Durations.Grog},
		{"peak", c.Durations.Peak},
		{"trough", c.Durations.Trough},
	}

	for _, d := range durations {
		if d.value < minDuration || d.value > maxDuration {
			return errInvalidDuration.Fmt(d.name, minDuration, maxDuration, d.value)
		}
	}

	return nil
}

func (c *Config) validateSettings() error {
	if c.Settings.Cycles < minCycles || c.Settings.Cycles > maxCycles {
		return errInvalidCycles.Fmt(minCycles, maxCycles, c.Settings.Cycles)
	}

	if _, err := time.Parse(timeutil.ClockLayout, c.Settings.WakeTime); err != nil {
		return timeutil.ErrInvalidWakeTime.Fmt(c.Settings.WakeTime)
	}

	if !slices.Contains(storageBackends, c.Settings.Storage) {
		return errInvalidStorage.Fmt(storageBackends, c.Settings.Storage)
	}

	return nil
}

func (c *Config) validateDisplay() error {
	colors := []struct {
		name  string
		value string
	}{
		{"grog", c.Display.Colors.Grog},
		{"peak", c.Display.Colors.Peak},
		{"trough", c.Display.Colors.Trough},
	}

	for _, col := range colors {
		if !hexColorRegex.MatchString(col.value) {
			return errInvalidColor.Fmt(col.name, col.value)
		}
	}

	return nil
}
