// file: config/config.go

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete apiprobe configuration
type Config struct {
	Auth    AuthConfig    `mapstructure:"auth"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	Logging LogConfig     `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// AuthConfig configures the OAuth2 client-credentials token source
type AuthConfig struct {
	IssuerURL     string        `mapstructure:"issuerUrl"` // Base address of the token issuer
	ClientID      string        `mapstructure:"clientId"`
	ClientSecret  string        `mapstructure:"clientSecret"`
	Audience      string        `mapstructure:"audience"`
	Scopes        []string      `mapstructure:"scopes"`
	RefreshBuffer time.Duration `mapstructure:"refreshBuffer"` // Refresh this much before expiry
	FetchTimeout  time.Duration `mapstructure:"fetchTimeout"`  // Timeout for a single issuer call
}

// GitHubConfig configures the downstream API client
type GitHubConfig struct {
	BaseURL    string           `mapstructure:"baseUrl"`
	APIVersion string           `mapstructure:"apiVersion"`
	Client     HTTPClientConfig `mapstructure:"client"`
}

// HTTPClientConfig configures the outbound HTTP client
type HTTPClientConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxIdleConns        int           `mapstructure:"maxIdleConns"`
	MaxIdleConnsPerHost int           `mapstructure:"maxIdleConnsPerHost"`
	IdleConnTimeout     time.Duration `mapstructure:"idleConnTimeout"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	OutputPath string `mapstructure:"outputPath"` // file path or "stdout"
	Encoding   string `mapstructure:"encoding"`   // json or console
}

// MetricsConfig for optional Prometheus metrics
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file using Viper
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)

	// Environment variable support
	v.SetEnvPrefix("APIPROBE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults applies sensible defaults
func setDefaults(cfg *Config) {
	if cfg.Auth.RefreshBuffer == 0 {
		cfg.Auth.RefreshBuffer = 2 * time.Minute
	}
	if cfg.Auth.FetchTimeout == 0 {
		cfg.Auth.FetchTimeout = 40 * time.Second
	}
	if cfg.GitHub.BaseURL == "" {
		cfg.GitHub.BaseURL = "https://api.github.com"
	}
	if cfg.GitHub.APIVersion == "" {
		cfg.GitHub.APIVersion = "2022-11-28"
	}
	if cfg.GitHub.Client.Timeout == 0 {
		cfg.GitHub.Client.Timeout = 30 * time.Second
	}
	if cfg.GitHub.Client.MaxIdleConns == 0 {
		cfg.GitHub.Client.MaxIdleConns = 100
	}
	if cfg.GitHub.Client.MaxIdleConnsPerHost == 0 {
		cfg.GitHub.Client.MaxIdleConnsPerHost = 10
	}
	if cfg.GitHub.Client.IdleConnTimeout == 0 {
		cfg.GitHub.Client.IdleConnTimeout = 90 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Encoding == "" {
		cfg.Logging.Encoding = "json"
	}
	if cfg.Logging.OutputPath == "" {
		cfg.Logging.OutputPath = "stdout"
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":2114"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// validate ensures configuration is structurally valid. Credential presence is
// checked by the token fetcher so that blank parameters surface as a typed
// configuration error at the call site rather than here.
func validate(cfg *Config) error {
	if cfg.Auth.RefreshBuffer < 0 {
		return fmt.Errorf("auth refreshBuffer cannot be negative")
	}
	if cfg.Auth.FetchTimeout <= 0 {
		return fmt.Errorf("auth fetchTimeout must be positive")
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.Logging.Level)
	}

	switch cfg.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding: %s", cfg.Logging.Encoding)
	}

	if cfg.GitHub.Client.Timeout <= 0 {
		return fmt.Errorf("github client timeout must be positive")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Address == "" {
		return fmt.Errorf("metrics address required when metrics are enabled")
	}

	return nil
}
