// Package config loads and validates engine configuration from YAML.
//
// Configuration is optional: with no file, Default() yields a working
// CSV-mode setup driven entirely by command-line flags. File values may
// reference environment variables with ${VAR} syntax.
package config
