// Package config loads, parses and validates the flashgen configuration
// from defaults, an optional YAML file, a .env file and SCRY_-prefixed
// environment variables. Callers receive a validated *Config and pass the
// relevant sections into constructors explicitly.
package config
