package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/ultradian/internal/config"
	"github.com/ayoisaiah/ultradian/internal/notify"
	"github.com/ayoisaiah/ultradian/internal/session"
	"github.com/ayoisaiah/ultradian/internal/timeutil"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig(configPath string) *config.Config {
	return &config.Config{
		Durations: config.DurationsConfig{
			Grog:   20,
			Peak:   90,
			Trough: 20,
		},
		Settings: config.SettingsConfig{
			WakeTime: "07:00",
			Cycles:   3,
			Storage:  "bolt",
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		API: config.APIConfig{
			BaseURL: "http://localhost:5000",
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
			Colors: config.ColorsConfig{
				Grog:   "#9CA3AF",
				Peak:   "#22C55E",
				Trough: "#60A5FA",
			},
		},
		PathToConfig: configPath,
	}
}

func TestViperWriteConfig(t *testing.T) {
	t.Setenv(config.TokenEnv, "")

	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	if diff := cmp.Diff(defaultConfig(configPath), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	_, err = os.Stat(configPath)
	require.NoError(t, err, "the default config should be written to disk")

	again, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	t.Setenv(config.TokenEnv, "")

	configPath := filepath.Join(t.TempDir(), "config.yml")

	yml := `durations:
  grog: 0
  peak: 75
  trough: 15
settings:
  cycles: 4
  wake_time: "06:30"
  24hr_clock: true
  storage: disk
api:
  base_url: https://rhythm.example.com
  token: file-token
display:
  colors:
    peak: "#FF0000"
`

	require.NoError(t, os.WriteFile(configPath, []byte(yml), 0o600))

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	want := defaultConfig(configPath)
	want.Durations = config.DurationsConfig{Grog: 0, Peak: 75, Trough: 15}
	want.Settings.Cycles = 4
	want.Settings.WakeTime = "06:30"
	want.Settings.TwentyFourHour = true
	want.Settings.Storage = "disk"
	want.API = config.APIConfig{
		BaseURL: "https://rhythm.example.com",
		Token:   "file-token",
	}
	want.Display.Colors.Peak = "#FF0000"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, session.Plan{
		WakeTime: "06:30",
		Grog:     0,
		Peak:     75,
		Trough:   15,
		Cycles:   4,
	}, cfg.Plan())
	assert.Equal(t, timeutil.ClockLayout, cfg.ClockLayout())

	token, err := cfg.Credentials().Token()
	require.NoError(t, err)
	assert.Equal(t, "file-token", token)
}

func TestViperPromptValuesWritten(t *testing.T) {
	t.Setenv(config.TokenEnv, "")

	configPath := filepath.Join(t.TempDir(), "config.yml")

	answers := func(c *config.Config) error {
		c.Durations.Peak = 60
		c.Settings.Cycles = 5
		c.Settings.WakeTime = "05:45"

		return nil
	}

	_, err := config.New(answers, config.WithViperConfig(configPath))
	require.NoError(t, err)

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Durations.Peak)
	assert.Equal(t, 5, cfg.Settings.Cycles)
	assert.Equal(t, "05:45", cfg.Settings.WakeTime)
	assert.Equal(t, 20, cfg.Durations.Trough)
}

func TestTokenFromEnvironment(t *testing.T) {
	t.Setenv(config.TokenEnv, "env-token")

	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.API.Token)
}

func TestMissingTokenCredential(t *testing.T) {
	cfg := defaultConfig("")

	_, err := cfg.Credentials().Token()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(c *config.Config)
		err    error
	}{
		{
			name:   "defaults",
			modify: func(*config.Config) {},
		},
		{
			name:   "zero length grog",
			modify: func(c *config.Config) { c.Durations.Grog = 0 },
		},
		{
			name:   "negative peak",
			modify: func(c *config.Config) { c.Durations.Peak = -1 },
			err:    config.ErrInvalidDuration,
		},
		{
			name:   "trough longer than twelve hours",
			modify: func(c *config.Config) { c.Durations.Trough = 721 },
			err:    config.ErrInvalidDuration,
		},
		{
			name:   "no cycles",
			modify: func(c *config.Config) { c.Settings.Cycles = 0 },
			err:    config.ErrInvalidCycles,
		},
		{
			name:   "too many cycles",
			modify: func(c *config.Config) { c.Settings.Cycles = 13 },
			err:    config.ErrInvalidCycles,
		},
		{
			name:   "bad wake time",
			modify: func(c *config.Config) { c.Settings.WakeTime = "7am" },
			err:    timeutil.ErrInvalidWakeTime,
		},
		{
			name:   "unsupported sound",
			modify: func(c *config.Config) { c.Notifications.Sound = "bell.aiff" },
			err:    notify.ErrInvalidSoundFormat,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig("")
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestValidateMisc(t *testing.T) {
	cfg := defaultConfig("")
	cfg.Display.Colors.Trough = "blue"
	assert.ErrorContains(t, cfg.Validate(), "trough color")

	cfg = defaultConfig("")
	cfg.Settings.Storage = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "sqlite")

	cfg = defaultConfig("")
	cfg.API.BaseURL = "localhost:5000"
	assert.ErrorContains(t, cfg.Validate(), "api base url")
}

func TestNewRejectsInvalidFile(t *testing.T) {
	t.Setenv(config.TokenEnv, "")

	configPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, os.WriteFile(configPath, []byte("settings:\n  cycles: 40\n"), 0o600))

	_, err := config.New(config.WithViperConfig(configPath))
	assert.ErrorIs(t, err, config.ErrInvalidCycles)
}
