// Package config loads process configuration from the environment,
// with optional .env file support.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr              string        `mapstructure:"CITYPULSE_ADDR"`
	DataDir           string        `mapstructure:"CITYPULSE_DATA_DIR"`
	DBPath            string        `mapstructure:"CITYPULSE_DB_PATH"`
	StaticDir         string        `mapstructure:"CITYPULSE_STATIC_DIR"`
	LogLevel          string        `mapstructure:"CITYPULSE_LOG_LEVEL"`
	SnowflakeNode     int64         `mapstructure:"CITYPULSE_SNOWFLAKE_NODE"`
	SchedulerInterval time.Duration `mapstructure:"CITYPULSE_SCHEDULER_INTERVAL"`
	SubmitPerMinute   int           `mapstructure:"CITYPULSE_SUBMIT_PER_MINUTE"`
	AlertsFeedURL     string        `mapstructure:"CITYPULSE_ALERTS_FEED_URL"`
	SeedExamples      bool          `mapstructure:"CITYPULSE_SEED_EXAMPLES"`
	SwaggerEnabled    bool          `mapstructure:"CITYPULSE_SWAGGER"`
}

// Load reads configuration from a .env file (when present) and the
// environment. Unset keys fall back to defaults.
func Load() Config {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "citypulse.db")
	}
	cfg.DBPath = filepath.Clean(cfg.DBPath)
	if cfg.StaticDir == "" {
		cfg.StaticDir = detectStaticDir()
	}
	cfg.StaticDir = filepath.Clean(cfg.StaticDir)

	return cfg
}

func bindEnvVariables() {
	_ = viper.BindEnv("CITYPULSE_ADDR")
	_ = viper.BindEnv("CITYPULSE_DATA_DIR")
	_ = viper.BindEnv("CITYPULSE_DB_PATH")
	_ = viper.BindEnv("CITYPULSE_STATIC_DIR")
	_ = viper.BindEnv("CITYPULSE_LOG_LEVEL")
	_ = viper.BindEnv("CITYPULSE_SNOWFLAKE_NODE")
	_ = viper.BindEnv("CITYPULSE_SCHEDULER_INTERVAL")
	_ = viper.BindEnv("CITYPULSE_SUBMIT_PER_MINUTE")
	_ = viper.BindEnv("CITYPULSE_ALERTS_FEED_URL")
	_ = viper.BindEnv("CITYPULSE_SEED_EXAMPLES")
	_ = viper.BindEnv("CITYPULSE_SWAGGER")
}

func setDefaults() {
	viper.SetDefault("CITYPULSE_ADDR", ":8080")
	viper.SetDefault("CITYPULSE_DATA_DIR", "data")
	viper.SetDefault("CITYPULSE_LOG_LEVEL", "info")
	viper.SetDefault("CITYPULSE_SNOWFLAKE_NODE", 0)
	viper.SetDefault("CITYPULSE_SCHEDULER_INTERVAL", "30m")
	viper.SetDefault("CITYPULSE_SUBMIT_PER_MINUTE", 10)
	viper.SetDefault("CITYPULSE_SEED_EXAMPLES", true)
	viper.SetDefault("CITYPULSE_SWAGGER", false)
}

func detectStaticDir() string {
	candidates := []string{
		"./frontend/dist",
		"../frontend/dist",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "./frontend/dist"
}
