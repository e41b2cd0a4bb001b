package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ultradian/internal/apperr"
	"github.com/ayoisaiah/ultradian/internal/models"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

var (
	errInvalidMood = &apperr.Error{
		Message: "mood must be one of %v, got %q",
	}

	errInvalidMeasurement = &apperr.Error{
		Message: "%s must be a positive number, got %q",
	}

	errLogBaseline = &apperr.Error{
		Message: "baseline saved locally but not sent to the record service",
	}
)

// baselineInput holds the raw values of a baseline entry.
type baselineInput struct {
	WakeTime string
	HRV      string
	RHR      string
	Sleep    string
	Mood     string
}

func hasBaselineFlags(ctx *cli.Context) bool {
	for _, name := range []string{"wake", "hrv", "rhr", "sleep", "mood"} {
		if ctx.IsSet(name) {
			return true
		}
	}

	return false
}

func baselineFromFlags(ctx *cli.Context, defaultWake string) baselineInput {
	in := baselineInput{
		WakeTime: ctx.String("wake"),
		Mood:     ctx.String("mood"),
	}

	if in.WakeTime == "" {
		in.WakeTime = defaultWake
	}

	if ctx.IsSet("hrv") {
		in.HRV = strconv.Itoa(ctx.Int("hrv"))
	}

	if ctx.IsSet("rhr") {
		in.RHR = strconv.Itoa(ctx.Int("rhr"))
	}

	if ctx.IsSet("sleep") {
		in.Sleep = strconv.FormatFloat(ctx.Float64("sleep"), 'f', -1, 64)
	}

	return in
}

func positiveInt(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}

		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v <= 0 {
			return errInvalidMeasurement.Fmt(name, s)
		}

		return nil
	}
}

func positiveFloat(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v <= 0 {
			return errInvalidMeasurement.Fmt(name, s)
		}

		return nil
	}
}

// promptBaseline asks for today's baseline interactively.
func promptBaseline(defaultWake string) (baselineInput, error) {
	in := baselineInput{
		WakeTime: defaultWake,
		Mood:     string(models.MoodNeutral),
	}

	moods := make([]huh.Option[string], 0, len(models.Moods))
	for _, m := range models.Moods {
		moods = append(moods, huh.NewOption(string(m), string(m)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Wake time").
				Value(&in.WakeTime),
			huh.NewInput().
				Title("Heart rate variability (ms)").
				Value(&in.HRV).
				Validate(positiveInt("hrv")),
			huh.NewInput().
				Title("Resting heart rate (bpm)").
				Value(&in.RHR).
				Validate(positiveInt("rhr")),
			huh.NewInput().
				Title("Hours slept").
				Value(&in.Sleep).
				Validate(positiveFloat("sleep")),
			huh.NewSelect[string]().
				Title("Mood").
				Options(moods...).
				Value(&in.Mood),
		),
	)

	if err := form.Run(); err != nil {
		return in, err
	}

	return in, nil
}

// parse validates the input and builds the baseline logged at now.
func (in baselineInput) parse(now time.Time) (*models.Baseline, error) {
	wake, err := timeutil.ParseWakeTime(in.WakeTime, now)
	if err != nil {
		return nil, err
	}

	mood := models.Mood(strings.ToLower(strings.TrimSpace(in.Mood)))
	if !mood.Valid() {
		return nil, errInvalidMood.Fmt(models.Moods, in.Mood)
	}

	b := &models.Baseline{
		LoggedAt: now,
		WakeTime: wake,
		Mood:     mood,
	}

	for _, f := range []struct {
		dst   *int
		name  string
		value string
	}{
		{&b.HRV, "hrv", in.HRV},
		{&b.RHR, "rhr", in.RHR},
	} {
		if err := positiveInt(f.name)(f.value); err != nil {
			return nil, err
		}

		if f.value != "" {
			*f.dst, _ = strconv.Atoi(strings.TrimSpace(f.value))
		}
	}

	if err := positiveFloat("sleep")(in.Sleep); err != nil {
		return nil, err
	}

	if in.Sleep != "" {
		b.SleepHours, _ = strconv.ParseFloat(strings.TrimSpace(in.Sleep), 64)
	}

	return b, nil
}
