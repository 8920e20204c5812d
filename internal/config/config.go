package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/S191857/robot/internal/driving"
)

// FileName is the config file looked up next to the shared library.
const FileName = "s191857.cfg.json"

// OTelConfig holds metric export settings
type OTelConfig struct {
	Enabled     bool   `json:"enabled" mapstructure:"enabled"`
	ServiceName string `json:"serviceName" mapstructure:"serviceName"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

func setDefaults() {
	d := driving.DefaultParams()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./s191857logs")

	viper.SetDefault("driving.gravity", d.Gravity)
	viper.SetDefault("driving.steerGain", d.SteerGain)
	viper.SetDefault("driving.shiftUpRatio", d.ShiftUpRatio)
	viper.SetDefault("driving.shiftDownMargin", d.ShiftDownMargin)
	viper.SetDefault("driving.accelMargin", d.AccelMargin)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "s191857")
}

// GetDrivingParams returns the heuristic tuning from config.
func GetDrivingParams() driving.Params {
	return driving.Params{
		Gravity:         viper.GetFloat64("driving.gravity"),
		SteerGain:       viper.GetFloat64("driving.steerGain"),
		ShiftUpRatio:    viper.GetFloat64("driving.shiftUpRatio"),
		ShiftDownMargin: viper.GetFloat64("driving.shiftDownMargin"),
		AccelMargin:     viper.GetFloat64("driving.accelMargin"),
	}
}

// GetOTelConfig returns the metric export settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:     viper.GetBool("otel.enabled"),
		ServiceName: viper.GetString("otel.serviceName"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}
