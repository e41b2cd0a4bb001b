package config

import (
	"io"
	"os"

	"github.com/ayoisaiah/ultradian/internal/record"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

type (
	// Config holds all configuration settings
	Config struct {
		Durations     DurationsConfig    `mapstructure:"durations"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		API           APIConfig          `mapstructure:"api"`
		Display       DisplayConfig      `mapstructure:"display"`
		CLI           CLIConfig          `mapstructure:"-"`
		PathToConfig  string             `mapstructure:"-"`
	}

	// DurationsConfig holds the segment lengths in minutes
	DurationsConfig struct {
		Grog   int `mapstructure:"grog"`
		Peak   int `mapstructure:"peak"`
		Trough int `mapstructure:"trough"`
	}

	// SettingsConfig holds scheduling and storage settings
	SettingsConfig struct {
		WakeTime        string `mapstructure:"wake_time"`
		Cmd             string `mapstructure:"cmd"`
		Storage         string `mapstructure:"storage"`
		Cycles          int    `mapstructure:"cycles"`
		RecommendCycles bool   `mapstructure:"recommend_cycles"`
		TwentyFourHour  bool   `mapstructure:"24hr_clock"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Sound   string `mapstructure:"sound"`
		Enabled bool   `mapstructure:"enabled"`
	}

	// APIConfig holds the record service settings
	APIConfig struct {
		BaseURL string `mapstructure:"base_url"`
		Token   string `mapstructure:"token"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		Colors    ColorsConfig `mapstructure:"colors"`
		DarkTheme bool         `mapstructure:"dark_theme"`
		NoColor   bool         `mapstructure:"-"`
	}

	// ColorsConfig holds the hex colour of each phase
	ColorsConfig struct {
		Grog   string `mapstructure:"grog"`
		Peak   string `mapstructure:"peak"`
		Trough string `mapstructure:"trough"`
	}

	// CLIConfig holds options that only exist for a single invocation
	CLIConfig struct {
		Headless bool
		Reset    bool
		// WakeTimeSet and CyclesSet report whether the values came from
		// flags and must not be replaced by the baseline or vibe score.
		WakeTimeSet bool
		CyclesSet   bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Plan returns the session plan described by the configuration.
func (c *Config) Plan() session.Plan {
	return session.Plan{
		WakeTime: c.Settings.WakeTime,
		Grog:     c.Durations.Grog,
		Peak:     c.Durations.Peak,
		Trough:   c.Durations.Trough,
		Cycles:   c.Settings.Cycles,
	}
}

// Credentials returns the bearer token for the record service.
func (c *Config) Credentials() record.Credentials {
	return record.StaticToken(c.API.Token)
}

// ClockLayout returns the layout used to print times of day.
func (c *Config) ClockLayout() string {
	if c.Settings.TwentyFourHour {
		return timeutil.ClockLayout
	}

	return "03:04 PM"
}
