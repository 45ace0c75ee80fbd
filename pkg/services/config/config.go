package config

import (
	"fmt"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AnalyticsConfig struct {
	DefaultPeriod string `mapstructure:"default_period"`
	TopGaps       int    `mapstructure:"top_gaps"`
	Concurrency   int    `mapstructure:"concurrency"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Server    ServerConfig    `mapstructure:"server"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Log       LogConfig       `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", string(domain.StorageDriverDuckDB))
	v.SetDefault("storage.path", "maturity-atlas.db")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("analytics.default_period", string(domain.Period6Months))
	v.SetDefault("analytics.top_gaps", 10)
	v.SetDefault("analytics.concurrency", 4)
	v.SetDefault("log.level", zerolog.InfoLevel.String())
}

// LoadConfig reads the YAML file at path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !domain.StorageDriver(c.Storage.Driver).Valid() {
		return domain.InvalidField("storage.driver", c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		return domain.InvalidField("storage.path", c.Storage.Path)
	}
	if _, err := domain.ParsePeriod(c.Analytics.DefaultPeriod); err != nil {
		return err
	}
	if c.Analytics.TopGaps < 0 {
		return domain.InvalidField("analytics.top_gaps", c.Analytics.TopGaps)
	}
	if c.Analytics.Concurrency < 1 {
		return domain.InvalidField("analytics.concurrency", c.Analytics.Concurrency)
	}
	if c.Server.ShutdownTimeout < 0 {
		return domain.InvalidField("server.shutdown_timeout", c.Server.ShutdownTimeout)
	}
	if _, err := c.Log.ZerologLevel(); err != nil {
		return err
	}
	return nil
}

func (l LogConfig) ZerologLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.NoLevel, domain.InvalidField("log.level", l.Level)
	}
	return level, nil
}
