// Package config loads, normalizes, and validates lrcloud configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LRCLOUD_API_KEY and LRCLOUD_ACCESS_TOKEN. The Config type centralizes
// the service origin, integration credentials, logging, and upload-history
// settings the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
