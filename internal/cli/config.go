package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the host options shared by every command. Flags win over
// PARAMORDER_* environment variables, which win over the config file.
type Settings struct {
	LogLevel   string  `mapstructure:"log_level"`
	BlockSize  int     `mapstructure:"block_size"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

const envPrefix = "PARAMORDER"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log_level", "warn")
	v.SetDefault("block_size", 512)
	v.SetDefault("sample_rate", 48000.0)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadSettings reads the optional config file and resolves the settings
func loadSettings(v *viper.Viper, configFile string) (Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return s, s.Validate()
}

// Validate checks that the settings can drive a processing session
func (s Settings) Validate() error {
	switch {
	case s.BlockSize <= 0:
		return fmt.Errorf("block size must be positive, got %d", s.BlockSize)
	case s.SampleRate <= 0:
		return fmt.Errorf("sample rate must be positive, got %g", s.SampleRate)
	case s.LogLevel == "":
		return errors.New("log level must not be empty")
	}
	return nil
}
