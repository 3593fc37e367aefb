// Package config loads runtime configuration from YAML with environment
// overrides. Everything has a sensible default so the server runs with
// no config file at all.
package config
