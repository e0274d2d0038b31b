package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrFileNotFound is returned when the config path does not exist.
var ErrFileNotFound = errors.New("configuration file not found")

// Config holds everything needed to run the catalog server.
// In YAML, latency is a duration string such as "300ms" or "1s".
type Config struct {
	Addr      string        `yaml:"addr"`
	Latency   time.Duration `yaml:"latency"`
	SeedFile  string        `yaml:"seed_file"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
	GinMode   string        `yaml:"gin_mode"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() Config {
	return Config{
		Addr:      ":8081",
		Latency:   300 * time.Millisecond,
		LogLevel:  "info",
		LogFormat: "json",
		GinMode:   "release",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and CATALOG_* environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// UnmarshalYAML rejects a bare integer latency, which would otherwise
// decode as nanoseconds.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if key.Value == "latency" && val.ShortTag() == "!!int" {
				return fmt.Errorf("line %d: latency %s needs a unit, e.g. %sms", val.Line, val.Value, val.Value)
			}
		}
	}

	type plain Config
	return node.Decode((*plain)(c))
}

func (c *Config) applyEnv() error {
	c.Addr = getEnv("CATALOG_ADDR", c.Addr)
	c.SeedFile = getEnv("CATALOG_SEED_FILE", c.SeedFile)
	c.LogLevel = getEnv("CATALOG_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("CATALOG_LOG_FORMAT", c.LogFormat)
	c.GinMode = getEnv("CATALOG_GIN_MODE", c.GinMode)

	if v := os.Getenv("CATALOG_LATENCY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CATALOG_LATENCY %q: %w", v, err)
		}
		c.Latency = d
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.Latency < 0 {
		return fmt.Errorf("latency must not be negative, got %s", c.Latency)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q: must be json or console", c.LogFormat)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown gin mode %q", c.GinMode)
	}
	return nil
}

// BaseURL is the URL a client on the same host uses to reach Addr.
// A wildcard or empty host becomes localhost.
func (c Config) BaseURL() string {
	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return "http://" + c.Addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
