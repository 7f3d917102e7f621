package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	appDirName     = "coursereg"
	defaultAPIBase = "http://localhost:5000"
)

type Config struct {
	APIBase     string
	HTTPTimeout time.Duration

	Log LogConfig
}

type LogConfig struct {
	Level string
	File  string
}

// Load reads configuration from the environment, an optional .env file in
// the working directory and the flag overrides bound by the caller.
func Load(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load()

	if v == nil {
		v = viper.New()
	}
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.SetEnvPrefix("COURSEREG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{
		APIBase:     strings.TrimRight(strings.TrimSpace(v.GetString("API_BASE")), "/"),
		HTTPTimeout: parseDuration(v.GetString("HTTP_TIMEOUT"), 0),
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
	}
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile()
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_BASE", defaultAPIBase)
	v.SetDefault("HTTP_TIMEOUT", "0s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, "coursereg.log")
}
