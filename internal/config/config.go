// Package config loads gomeasure settings with viper.
package config

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "gomeasure.cfg.json"

// ErrConfigNotFound is returned by Load when no config file exists.
// Defaults are still in effect.
var ErrConfigNotFound = errors.New("config file not found")

// SetDefaults registers the built-in values for every key
func SetDefaults() {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("measurement.lineColor", "#64c8ff")
	viper.SetDefault("measurement.labelColor", "#ffffff")
	viper.SetDefault("measurement.lineWidth", 2.0)
	viper.SetDefault("measurement.fontSize", 12.0)
	viper.SetDefault("measurement.fontFamily", "JetBrains Mono")
	viper.SetDefault("measurement.snapMode", "vertex")
	viper.SetDefault("measurement.snapEnabled", true)
	viper.SetDefault("measurement.snapDistance", 0.05)
	viper.SetDefault("measurement.dynamic", false)

	viper.SetDefault("viewer.width", 1400)
	viper.SetDefault("viewer.height", 900)
}

// Load reads configuration from the JSON file in configDir and sets default values
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("%w in %s", ErrConfigNotFound, configDir)
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// DefaultOptions builds the options for new measurements from the measurement.* keys
func DefaultOptions() (measurement.Options, error) {
	o := measurement.DefaultOptions()

	lineColor, err := measurement.ParseColor(viper.GetString("measurement.lineColor"))
	if err != nil {
		return o, fmt.Errorf("measurement.lineColor: %w", err)
	}
	labelColor, err := measurement.ParseColor(viper.GetString("measurement.labelColor"))
	if err != nil {
		return o, fmt.Errorf("measurement.labelColor: %w", err)
	}
	mode, err := measurement.ParseSnapMode(viper.GetString("measurement.snapMode"))
	if err != nil {
		return o, fmt.Errorf("measurement.snapMode: %w", err)
	}

	o.LineColor = lineColor
	o.LabelColor = labelColor
	o.LineWidth = viper.GetFloat64("measurement.lineWidth")
	o.FontSize = viper.GetFloat64("measurement.fontSize")
	o.FontFamily = viper.GetString("measurement.fontFamily")
	o = o.WithSnap(mode, viper.GetFloat64("measurement.snapDistance"), viper.GetBool("measurement.snapEnabled"))
	return o.WithDynamic(viper.GetBool("measurement.dynamic")), nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}
