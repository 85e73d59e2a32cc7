// ABOUTME: Configuration loader for the jobboard CLI and TUI
// ABOUTME: Reads .env, an optional YAML file and JOBBOARD_* environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIURL is the backend used when nothing else is configured
const DefaultAPIURL = "http://localhost:5000/api"

// EnvPrefix prefixes every environment override, e.g. JOBBOARD_API_URL
const EnvPrefix = "JOBBOARD"

// Config represents the complete jobboard configuration
type Config struct {
	APIURL               string        `mapstructure:"api_url"`
	ConfigDir            string        `mapstructure:"config_dir"`
	NotificationDuration time.Duration `mapstructure:"notification_duration"`
	HTTPTimeout          time.Duration `mapstructure:"http_timeout"`
	Log                  LogConfig     `mapstructure:"log"`
	Output               OutputConfig  `mapstructure:"output"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains terminal output settings
type OutputConfig struct {
	Colors bool   `mapstructure:"colors"`
	Icons  string `mapstructure:"icons"`
}

// DefaultDir returns the default config directory following XDG spec
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jobboard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jobboard")
}

// Load reads configuration. cfgFile may be empty, in which case config.yaml
// is searched for in the working directory and the default config directory.
func Load(cfgFile string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := DefaultDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.ConfigDir == "" {
		cfg.ConfigDir = DefaultDir()
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv loads KEY=value pairs without overriding the real environment.
// A missing file is fine.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("config_dir", "")
	v.SetDefault("notification_duration", 5*time.Second)
	v.SetDefault("http_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.colors", true)
	v.SetDefault("output.icons", "auto")
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url: %q (must be an http or https URL)", cfg.APIURL)
	}

	if cfg.NotificationDuration < 0 {
		return fmt.Errorf("invalid notification_duration: %s (must not be negative)", cfg.NotificationDuration)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid http_timeout: %s (must be positive)", cfg.HTTPTimeout)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	validIcons := map[string]bool{"auto": true, "nerd": true, "unicode": true}
	if !validIcons[strings.ToLower(cfg.Output.Icons)] {
		return fmt.Errorf("invalid output icons: %s (must be auto, nerd, or unicode)", cfg.Output.Icons)
	}

	return nil
}
