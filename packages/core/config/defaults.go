package config

import "time"

// DefaultIntervalMillis is the retry interval used when neither the config
// file nor the verify call specifies one.
const DefaultIntervalMillis = 500

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		DefaultIntervalMillis: DefaultIntervalMillis,
		HistoryPath:           "",
		Reporters:             []string{"console"},
		Verbose:               BoolPtr(false),
		NoColor:               BoolPtr(false),
	}
}

// Interval returns the configured default retry interval as a duration,
// falling back to the package default when unset.
func (c *Config) Interval() time.Duration {
	if c.DefaultIntervalMillis <= 0 {
		return DefaultIntervalMillis * time.Millisecond
	}
	return time.Duration(c.DefaultIntervalMillis) * time.Millisecond
}
