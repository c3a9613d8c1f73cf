// Package config loads and validates the application configuration from an
// optional YAML file and FMD_-prefixed environment variables, and resolves
// the executable-relative path layout the rest of the pipeline uses.
package config
