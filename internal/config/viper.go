package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Config keys as they appear in the YAML file.
const (
	keyGrogDuration         = "durations.grog"
	keyPeakDuration         = "durations.peak"
	keyTroughDuration       = "durations.trough"
	keyCycles               = "settings.cycles"
	keyWakeTime             = "settings.wake_time"
	keyRecommendCycles      = "settings.recommend_cycles"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyStorage              = "settings.storage"
	keyNotificationsEnabled = "notifications.enabled"
	keyNotificationSound    = "notifications.sound"
	keyAPIBaseURL           = "api.base_url"
	keyAPIToken             = "api.token"
	keyDarkTheme            = "display.dark_theme"
	keyGrogColor            = "display.colors.grog"
	keyPeakColor            = "display.colors.peak"
	keyTroughColor          = "display.colors.trough"
)

// TokenEnv supplies the bearer token when the config file has none.
const TokenEnv = "ULTRADIAN_TOKEN"

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath, writing it with defaults first if it does not exist.
// Values already present on the Config (from the first-run prompt) are
// written to the new file.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v)

		c.PathToConfig = configPath

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		applyPromptValues(v, c)

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper registers the defaults of every key.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyGrogDuration, 20)
	v.SetDefault(keyPeakDuration, 90)
	v.SetDefault(keyTroughDuration, 20)
	v.SetDefault(keyCycles, 3)
	v.SetDefault(keyWakeTime, "07:00")
	v.SetDefault(keyRecommendCycles, false)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyStorage, "bolt")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyNotificationSound, "")
	v.SetDefault(keyAPIBaseURL, "http://localhost:5000")
	v.SetDefault(keyAPIToken, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyGrogColor, "#9CA3AF")
	v.SetDefault(keyPeakColor, "#22C55E")
	v.SetDefault(keyTroughColor, "#60A5FA")

	_ = v.BindEnv(keyAPIToken, TokenEnv)
}

func applyPromptValues(v *viper.Viper, c *Config) {
	if c.Durations.Grog != 0 {
		v.Set(keyGrogDuration, c.Durations.Grog)
	}

	if c.Durations.Peak != 0 {
		v.Set(keyPeakDuration, c.Durations.Peak)
	}

	if c.Durations.Trough != 0 {
		v.Set(keyTroughDuration, c.Durations.Trough)
	}

	if c.Settings.Cycles != 0 {
		v.Set(keyCycles, c.Settings.Cycles)
	}

	if c.Settings.WakeTime != "" {
		v.Set(keyWakeTime, c.Settings.WakeTime)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
