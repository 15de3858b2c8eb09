// Package utils provides common utility functions for the indy-builder application.
// It includes loose type conversion helpers used when normalizing raw provider rows,
// which arrive as field maps decoded from JSON or YAML.
package utils
