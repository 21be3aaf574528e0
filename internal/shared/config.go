package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Session  SessionConfig  `toml:"session"`
	Carousel CarouselConfig `toml:"carousel"`
	Search   SearchConfig   `toml:"search"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// APIConfig contains the remote endpoints the client consumes.
type APIConfig struct {
	MoviesURL      string  `toml:"movies_url"`
	AuthBaseURL    string  `toml:"auth_base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Pages          int     `toml:"pages"`
	PagesPerSecond float64 `toml:"pages_per_second"`
}

// SessionConfig contains auth flow timings.
type SessionConfig struct {
	RedirectDelayMS int `toml:"redirect_delay_ms"`
	ToastMS         int `toml:"toast_ms"`
}

// CarouselConfig contains row scrolling settings.
type CarouselConfig struct {
	Threshold int     `toml:"threshold"`
	StepRatio float64 `toml:"step_ratio"`
	CardWidth int     `toml:"card_width"`
}

// SearchConfig contains search panel settings.
type SearchConfig struct {
	MaxResults int `toml:"max_results"`
}

// ServerConfig contains settings for the local development API.
type ServerConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Timeout returns the HTTP client timeout; zero means none.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedirectDelay returns the delay between an auth success and the landing redirect.
func (c SessionConfig) RedirectDelay() time.Duration {
	return time.Duration(c.RedirectDelayMS) * time.Millisecond
}

// ToastDuration returns how long a notification stays visible.
func (c SessionConfig) ToastDuration() time.Duration {
	return time.Duration(c.ToastMS) * time.Millisecond
}

// Addr returns the listen address of the development API.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TokenTTL returns the lifetime of tokens minted by the development API.
func (c ServerConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides endpoints from MARQUEE_MOVIES_URL and MARQUEE_AUTH_URL when set.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("MARQUEE_MOVIES_URL")); v != "" {
		c.API.MoviesURL = v
	}
	if v := strings.TrimSpace(os.Getenv("MARQUEE_AUTH_URL")); v != "" {
		c.API.AuthBaseURL = v
	}
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.API.MoviesURL == "":
		return fmt.Errorf("%w: api.movies_url is required", ErrInvalidConfig)
	case c.API.AuthBaseURL == "":
		return fmt.Errorf("%w: api.auth_base_url is required", ErrInvalidConfig)
	case c.API.Pages < 1:
		return fmt.Errorf("%w: api.pages must be at least 1", ErrInvalidConfig)
	case c.API.TimeoutSeconds < 0:
		return fmt.Errorf("%w: api.timeout_seconds must not be negative", ErrInvalidConfig)
	case c.Carousel.StepRatio <= 0 || c.Carousel.StepRatio > 1:
		return fmt.Errorf("%w: carousel.step_ratio must be in (0, 1]", ErrInvalidConfig)
	case c.Carousel.CardWidth < 8:
		return fmt.Errorf("%w: carousel.card_width must be at least 8", ErrInvalidConfig)
	case c.Search.MaxResults < 1:
		return fmt.Errorf("%w: search.max_results must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
