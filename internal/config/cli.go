package config

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	WakeTime      string
	Token         string
	BaseURL       string
	Sound         string
	SessionCmd    string
	Grog          *int
	Peak          *int
	Trough        *int
	Cycles        *int
	Headless      bool
	DisableNotify bool
	Reset         bool
	NoColor       bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		intFlag := func(name string) *int {
			if !ctx.IsSet(name) {
				return nil
			}

			v := ctx.Int(name)

			return &v
		}

		opts := CLIOptions{
			Grog:          intFlag("grog"),
			Peak:          intFlag("peak"),
			Trough:        intFlag("trough"),
			Cycles:        intFlag("cycles"),
			WakeTime:      ctx.String("wake"),
			Token:         ctx.String("token"),
			BaseURL:       ctx.String("api"),
			Sound:         ctx.String("sound"),
			SessionCmd:    ctx.String("session-cmd"),
			Headless:      ctx.Bool("headless"),
			DisableNotify: ctx.Bool("disable-notification"),
			Reset:         ctx.Bool("reset"),
			NoColor:       ctx.Bool("no-color"),
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if opts.Grog != nil {
		c.Durations.Grog = *opts.Grog
	}

	if opts.Peak != nil {
		c.Durations.Peak = *opts.Peak
	}

	if opts.Trough != nil {
		c.Durations.Trough = *opts.Trough
	}

	if opts.Cycles != nil {
		c.Settings.Cycles = *opts.Cycles
		c.CLI.CyclesSet = true
	}

	if opts.WakeTime != "" {
		wake, err := timeutil.ParseWakeTime(opts.WakeTime, now)
		if err != nil {
			return err
		}

		c.Settings.WakeTime = wake
		c.CLI.WakeTimeSet = true
	}

	if opts.Token != "" {
		c.API.Token = opts.Token
	}

	if opts.BaseURL != "" {
		c.API.BaseURL = opts.BaseURL
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	switch opts.Sound {
	case "":
	case "off":
		c.Notifications.Sound = ""
	default:
		c.Notifications.Sound = opts.Sound
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	c.CLI.Headless = opts.Headless
	c.CLI.Reset = opts.Reset
	c.Display.NoColor = opts.NoColor

	return nil
}
