// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// The package supports multiple snapshot feeds, heuristic tuning knobs and
// output selection, and allows feed selection by name.
package config
