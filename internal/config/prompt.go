package config

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

const asciiLogo = `
█  █ █    ▀█▀ █▀▄ ▄▀▄ █▀▄ █ ▄▀▄ █▄ █
▀▄▄▀ █▄▄   █  █▀▄ █▀█ █▄▀ █ █▀█ █ ▀█`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	WakeTime string
	Grog     int
	Peak     int
	Trough   int
	Cycles   int
}

// WithPromptConfig returns an Option that asks for the schedule
// interactively when no config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

func validateClock(s string) error {
	if _, err := time.Parse(timeutil.ClockLayout, s); err != nil {
		return timeutil.ErrInvalidWakeTime.Fmt(s)
	}

	return nil
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		WakeTime: "07:00",
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to plan your day for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'ultradian edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usual wake time (HH:MM)").
				Value(&opts.WakeTime).
				Validate(validateClock),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Morning grog length").
				Options(
					huh.NewOption("No grog", 0),
					huh.NewOption("15 minutes", 15),
					huh.NewOption("20 minutes", 20).Selected(true),
					huh.NewOption("30 minutes", 30),
					huh.NewOption("45 minutes", 45),
				).
				Value(&opts.Grog),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Peak focus length").
				Options(
					huh.NewOption("60 minutes", 60),
					huh.NewOption("75 minutes", 75),
					huh.NewOption("90 minutes", 90).Selected(true),
					huh.NewOption("120 minutes", 120),
				).
				Value(&opts.Peak),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Trough recovery length").
				Options(
					huh.NewOption("15 minutes", 15),
					huh.NewOption("20 minutes", 20).Selected(true),
					huh.NewOption("30 minutes", 30),
				).
				Value(&opts.Trough),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Cycles per day").
				Options(
					huh.NewOption("2 cycles", 2),
					huh.NewOption("3 cycles", 3).Selected(true),
					huh.NewOption("4 cycles", 4),
					huh.NewOption("5 cycles", 5),
				).
				Value(&opts.Cycles),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Settings.WakeTime = opts.WakeTime
	c.Durations.Grog = opts.Grog
	c.Durations.Peak = opts.Peak
	c.Durations.Trough = opts.Trough
	c.Settings.Cycles = opts.Cycles
}
