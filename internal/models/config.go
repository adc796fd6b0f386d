package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ErrInvalidConfiguration marks configuration problems that are fatal at
// startup. Use errors.Is to test for it.
var ErrInvalidConfiguration = errors.New("invalid configuration")

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type Config struct {
	Seed     int     `mapstructure:"seed"`
	CityName string  `mapstructure:"city_name"`
	CityLat  float64 `mapstructure:"city_latitude"`
	CityLon  float64 `mapstructure:"city_longitude"`
	GridSize int     `mapstructure:"grid_size"`

	TrafficInterval time.Duration `mapstructure:"traffic_interval"`
	WeatherInterval time.Duration `mapstructure:"weather_interval"`
	MaxBatchBytes   int           `mapstructure:"max_batch_bytes"`
	TrafficTopic    string        `mapstructure:"traffic_topic"`
	WeatherTopic    string        `mapstructure:"weather_topic"`
	StationID       string        `mapstructure:"station_id"`

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	PostgresEnabled bool           `mapstructure:"postgres_enabled"`
	Database        DatabaseConfig `mapstructure:"database"`

	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputFormat      string             `mapstructure:"output_format"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
}

// LoadConfig initializes and reads the configuration using Viper. A missing
// config file is not an error; defaults and environment variables apply.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("city_name", "New York City")
	viper.SetDefault("city_latitude", 40.7128)
	viper.SetDefault("city_longitude", -74.0060)
	viper.SetDefault("grid_size", 10)
	viper.SetDefault("traffic_interval", "30s")
	viper.SetDefault("weather_interval", "5m")
	viper.SetDefault("max_batch_bytes", 1<<20)
	viper.SetDefault("traffic_topic", "traffic-sensors")
	viper.SetDefault("weather_topic", "weather-events")
	viper.SetDefault("station_id", "WEATHER-CENTRAL-01")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("output_folder", "data")
	viper.SetDefault("output_format", "json")
	viper.SetDefault("output_destination", "local")
}

// Validate reports the first startup-fatal problem with the configuration.
func (cfg *Config) Validate() error {
	if cfg.GridSize < 1 {
		return fmt.Errorf("%w: grid_size must be at least 1, got %d", ErrInvalidConfiguration, cfg.GridSize)
	}
	if cfg.TrafficInterval <= 0 {
		return fmt.Errorf("%w: traffic_interval must be positive, got %s", ErrInvalidConfiguration, cfg.TrafficInterval)
	}
	if cfg.WeatherInterval <= 0 {
		return fmt.Errorf("%w: weather_interval must be positive, got %s", ErrInvalidConfiguration, cfg.WeatherInterval)
	}
	if cfg.MaxBatchBytes <= 0 {
		return fmt.Errorf("%w: max_batch_bytes must be positive, got %d", ErrInvalidConfiguration, cfg.MaxBatchBytes)
	}
	if cfg.TrafficTopic == "" || cfg.WeatherTopic == "" {
		return fmt.Errorf("%w: traffic_topic and weather_topic must be set", ErrInvalidConfiguration)
	}
	return nil
}
