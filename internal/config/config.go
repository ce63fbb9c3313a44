// Package config loads server settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config contains server configuration parameters.
type Config struct {
	Port        string        `yaml:"port" env:"PORT"`
	APIBaseURL  string        `yaml:"api_base_url" env:"API_BASE_URL"`
	APITimeout  time.Duration `yaml:"api_timeout" env:"API_TIMEOUT"`
	LogLevel    string        `yaml:"log_level" env:"LOG_LEVEL"`
	NotifyTTL   time.Duration `yaml:"notify_ttl" env:"NOTIFY_TTL"`
	SessionIdle time.Duration `yaml:"session_idle" env:"SESSION_IDLE"`
	Gzip        bool          `yaml:"gzip" env:"GZIP"`
}

func Default() Config {
	return Config{
		Port:        "8080",
		APIBaseURL:  "http://localhost:5000/api",
		APITimeout:  10 * time.Second,
		LogLevel:    "info",
		NotifyTTL:   5 * time.Second,
		SessionIdle: 30 * time.Minute,
		Gzip:        true,
	}
}

// Load builds a Config. path names an optional YAML file; an empty path
// skips it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is empty"))
	}
	u, err := url.Parse(c.APIBaseURL)
	switch {
	case c.APIBaseURL == "":
		errs = append(errs, errors.New("api base url is empty"))
	case err != nil:
		errs = append(errs, fmt.Errorf("api base url: %w", err))
	case !u.IsAbs() || u.Host == "":
		errs = append(errs, fmt.Errorf("api base url %q is not absolute", c.APIBaseURL))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("api timeout must be positive, got %s", c.APITimeout))
	}
	if c.NotifyTTL <= 0 {
		errs = append(errs, fmt.Errorf("notify ttl must be positive, got %s", c.NotifyTTL))
	}
	if c.SessionIdle <= 0 {
		errs = append(errs, fmt.Errorf("session idle must be positive, got %s", c.SessionIdle))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
