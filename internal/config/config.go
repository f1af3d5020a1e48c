package config

import (
	"time"
)

type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger"`
	Scanner ScannerConfig `mapstructure:"scanner"`
	Server  ServerConfig  `mapstructure:"server"`
}

type LoggerConfig struct {
	Level       string   `mapstructure:"level"`
	Format      string   `mapstructure:"format"`
	OutputPaths []string `mapstructure:"output_paths"`
}

type ScannerConfig struct {
	UserAgent       string          `mapstructure:"user_agent"`
	ProbeTimeout    time.Duration   `mapstructure:"probe_timeout"`
	FetchTimeout    time.Duration   `mapstructure:"fetch_timeout"`
	PageTimeout     time.Duration   `mapstructure:"page_timeout"`
	RedirectTimeout time.Duration   `mapstructure:"redirect_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`

	// AllowPrivateHosts permits scans of RFC1918 and loopback targets.
	AllowPrivateHosts bool `mapstructure:"allow_private_hosts"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	BurstSize         int     `mapstructure:"burst_size"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Logger: LoggerConfig{
			Level:  "info",
			Format: "console",
		},
		Scanner: ScannerConfig{
			UserAgent:       "WP-Migration-Scanner/0.1",
			ProbeTimeout:    5 * time.Second,
			FetchTimeout:    10 * time.Second,
			PageTimeout:     15 * time.Second,
			RedirectTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 10,
				BurstSize:         5,
			},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
