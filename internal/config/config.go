package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./seawatchlogs")
	viper.SetDefault("sessionTag", "Watch")

	viper.SetDefault("http.addr", ":8086")

	viper.SetDefault("db.enabled", true)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "seawatch")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.outputDir", "./sessions")
	viper.SetDefault("storage.compressOutput", true)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8087")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "seawatch-metrics")
	viper.SetDefault("influx.bucket", "link_events")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", false)

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("monitor.intervalSeconds", 30)
	viper.SetDefault("worker.flushIntervalSeconds", 5)

	viper.SetDefault("sim.enabled", false)
	viper.SetDefault("sim.vessels", 2)

	viper.SetConfigName("seawatchd.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// StorageConfig holds storage backend selection and memory backend
// settings.
type StorageConfig struct {
	Type           string `json:"type" mapstructure:"type"`
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// Storage returns the storage section of the loaded config.
func Storage() StorageConfig {
	return StorageConfig{
		Type:           viper.GetString("storage.type"),
		OutputDir:      viper.GetString("storage.outputDir"),
		CompressOutput: viper.GetBool("storage.compressOutput"),
	}
}
