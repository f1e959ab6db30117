package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// DescriptorPath points at a .hcl deployment descriptor file or a
	// directory of them.
	DescriptorPath string

	// ListenAddr, when set, overrides the descriptor's listen_addr.
	ListenAddr string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DescriptorPath == "" {
		return nil, errors.New("DescriptorPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
