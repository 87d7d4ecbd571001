// Package config handles configuration loading for the verification engine.
//
// It provides functionality for:
//   - Loading configuration from .verity.config.json/.yaml files
//   - Default configuration values
//   - Merging file configuration with programmatic overrides
//
// A Config is built once at startup and injected into the engine; there is
// no mutable global configuration.
package config
