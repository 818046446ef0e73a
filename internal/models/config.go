package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"` // memory, postgres or sqlite
	DSN    string `mapstructure:"dsn"`
}

type KafkaConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	BrokerList       []string `mapstructure:"broker_list"`
	TopicPrefix      string   `mapstructure:"topic_prefix"`
	SessionTimeoutMs int      `mapstructure:"session_timeout_ms"`
}

type OutputConfig struct {
	Destination string `mapstructure:"destination"` // console, json or parquet
	Path        string `mapstructure:"path"`
	Folder      string `mapstructure:"folder"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type SimulationConfig struct {
	Seed        int64         `mapstructure:"seed"`
	Sessions    int           `mapstructure:"sessions"`
	Items       int           `mapstructure:"items"`
	ActionsMin  int           `mapstructure:"actions_min"`
	ActionsMax  int           `mapstructure:"actions_max"`
	DriftRate   float64       `mapstructure:"drift_rate"`
	SoldOutRate float64       `mapstructure:"sold_out_rate"`
	ThinkTime   time.Duration `mapstructure:"think_time"` // simulated time between customer actions
}

type Config struct {
	PointsEnabled bool               `mapstructure:"points_enabled"`
	SoldOut       []int              `mapstructure:"sold_out"`
	Log           LogConfig          `mapstructure:"log"`
	Store         StoreConfig        `mapstructure:"store"`
	Kafka         KafkaConfig        `mapstructure:"kafka"`
	Output        OutputConfig       `mapstructure:"output"`
	CloudStorage  CloudStorageConfig `mapstructure:"cloud_storage"`
	Simulation    SimulationConfig   `mapstructure:"simulation"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("store.driver", StoreDriverMemory)
	v.SetDefault("kafka.broker_list", []string{"localhost:9092"})
	v.SetDefault("kafka.session_timeout_ms", 45000)
	v.SetDefault("output.destination", OutputConsole)
	v.SetDefault("output.folder", "carts")
	v.SetDefault("cloud_storage.provider", "")
	v.SetDefault("simulation.seed", 42)
	v.SetDefault("simulation.sessions", 100)
	v.SetDefault("simulation.items", 25)
	v.SetDefault("simulation.actions_min", 2)
	v.SetDefault("simulation.actions_max", 8)
	v.SetDefault("simulation.drift_rate", 0.1)
	v.SetDefault("simulation.sold_out_rate", 0.05)
	v.SetDefault("simulation.think_time", "45s")
}

// LoadConfig reads configuration from cfgFile (or the default locations),
// the environment and any flags already bound on v.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.SetConfigName(".foodcart")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("foodcart")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit config file must exist; the default one is optional
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (cfg *Config) Validate() error {
	switch cfg.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres, StoreDriverSQLite:
		if cfg.Store.DSN == "" {
			return fmt.Errorf("store %q requires a dsn", cfg.Store.Driver)
		}
	default:
		return fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}

	switch cfg.Output.Destination {
	case OutputConsole:
	case OutputJSON, OutputParquet:
		if cfg.Output.Path == "" && cfg.CloudStorage.Provider == "" {
			return fmt.Errorf("output %q requires a path", cfg.Output.Destination)
		}
	default:
		return fmt.Errorf("unsupported output destination: %s", cfg.Output.Destination)
	}

	if cfg.Kafka.Enabled && len(cfg.Kafka.BrokerList) == 0 {
		return fmt.Errorf("kafka enabled without brokers")
	}
	if cfg.Simulation.ActionsMax < cfg.Simulation.ActionsMin {
		return fmt.Errorf("simulation.actions_max (%d) is below actions_min (%d)", cfg.Simulation.ActionsMax, cfg.Simulation.ActionsMin)
	}
	return nil
}

// SoldOutSet returns the statically configured sold-out ids.
func (cfg *Config) SoldOutSet() SoldOutSet {
	return NewSoldOutSet(cfg.SoldOut...)
}

// Topic applies the configured Kafka topic prefix.
func (cfg *Config) Topic(name string) string {
	if cfg.Kafka.TopicPrefix == "" {
		return name
	}
	return cfg.Kafka.TopicPrefix + "." + name
}
