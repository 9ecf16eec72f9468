package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr                string        `mapstructure:"addr" yaml:"addr"`
	LogLevel            string        `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout   time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout     time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxInboundPerMinute int           `mapstructure:"max_inbound_per_minute" yaml:"max_inbound_per_minute"`
}

// Default returns configuration with reasonable starter defaults. The
// listen address matches the port the reference frontend expects.
func Default() Config {
	return Config{
		Addr:                ":5000",
		LogLevel:            "info",
		ReadHeaderTimeout:   5 * time.Second,
		ShutdownTimeout:     5 * time.Second,
		MaxInboundPerMinute: 600,
	}
}
