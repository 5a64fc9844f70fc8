package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	freqdetector "github.com/mherrerarendon/freq-detector"
	"github.com/spf13/viper"
)

const (
	AppName       = "freqdetect"
	ConfigType    = "yaml"
	EnvPrefix     = "FREQDETECT"
	DefaultConfig = `# freqdetect configuration

algorithm: "autocorrelation"  # autocorrelation or power-cepstrum
frame_size: 8192               # samples per detection window

# Search range
min_frequency: 32.70           # Hz (C1)
max_frequency: 1046.50         # Hz (C6)

# Power cepstrum peak picking
min_peak_distance: 60          # bins
min_prominence: 10

debug: false
`
)

// Settings holds the CLI configuration.
type Settings struct {
	Algorithm       string  `mapstructure:"algorithm"`
	FrameSize       int     `mapstructure:"frame_size"`
	MinFrequency    float64 `mapstructure:"min_frequency"`
	MaxFrequency    float64 `mapstructure:"max_frequency"`
	MinPeakDistance int     `mapstructure:"min_peak_distance"`
	MinProminence   float64 `mapstructure:"min_prominence"`
	Debug           bool    `mapstructure:"debug"`
}

// Init registers defaults and environment overrides, then reads the config file. An explicit path must exist;
// otherwise config.yaml is looked up in the current directory and then ~/.config/freqdetect/, and a missing file
// is not an error.
func Init(path string) error {
	viper.SetDefault("algorithm", freqdetector.AutocorrelationAlgorithm)
	viper.SetDefault("frame_size", 8192)
	viper.SetDefault("min_frequency", freqdetector.DefaultParams.MinFrequency)
	viper.SetDefault("max_frequency", freqdetector.DefaultParams.MaxFrequency)
	viper.SetDefault("min_peak_distance", freqdetector.DefaultParams.MinPeakDistance)
	viper.SetDefault("min_prominence", freqdetector.DefaultParams.MinProminence)
	viper.SetDefault("debug", false)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	viper.SetConfigType(ConfigType)
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Get returns the current, validated settings.
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges.
func (s *Settings) Validate() error {
	var errs []error

	if !slices.Contains(freqdetector.Algorithms(), strings.ToLower(s.Algorithm)) {
		errs = append(errs, fmt.Errorf("algorithm must be one of %s, got %q",
			strings.Join(freqdetector.Algorithms(), ", "), s.Algorithm))
	}
	if s.FrameSize < 64 || s.FrameSize > 1<<20 {
		errs = append(errs, fmt.Errorf("frame_size must be between 64 and %d, got %d", 1<<20, s.FrameSize))
	}
	if s.MinFrequency <= 0 {
		errs = append(errs, fmt.Errorf("min_frequency must be positive, got %v", s.MinFrequency))
	}
	if s.MaxFrequency <= s.MinFrequency {
		errs = append(errs, fmt.Errorf("max_frequency (%v Hz) must be above min_frequency (%v Hz)", s.MaxFrequency, s.MinFrequency))
	}
	if s.MinPeakDistance < 0 {
		errs = append(errs, fmt.Errorf("min_peak_distance must not be negative, got %d", s.MinPeakDistance))
	}
	if s.MinProminence < 0 {
		errs = append(errs, fmt.Errorf("min_prominence must not be negative, got %v", s.MinProminence))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Params converts the settings into detector params.
func (s *Settings) Params() freqdetector.Params {
	return freqdetector.Params{
		MinFrequency:    s.MinFrequency,
		MaxFrequency:    s.MaxFrequency,
		MinPeakDistance: s.MinPeakDistance,
		MinProminence:   s.MinProminence,
	}
}
