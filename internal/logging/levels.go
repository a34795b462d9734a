// Package logging provides centralized log level validation for spobatch.
//
// This file defines the canonical set of valid log levels used across
// configuration, the batch client, the transport/auth layers, and the CLI.
// Centralizing validation ensures consistency and makes it easy to add new
// log levels without updating multiple files.
//
// SUPPORTED LOG LEVELS:
//   - DEBUG: Detailed framing/dispatch decisions for development and troubleshooting
//   - INFO:  General operational information (batch lifecycle events)
//   - WARN:  Warning conditions that should be noted but don't stop operation
//   - ERROR: Error conditions that indicate problems requiring attention
//
// All log level strings are case-sensitive and must be uppercase to maintain
// consistency with the logging system's internal level handling.
package logging

import "fmt"

// ValidLogLevels defines the canonical set of supported log levels across
// all spobatch components. This map serves as the single source of truth
// for log level validation in configs and CLI flags.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel checks if the provided log level string is supported.
// Returns true for valid levels, false otherwise.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}

// ValidateLogLevel validates a log level string and returns an error if invalid.
// Used by config validation to catch invalid log levels early with clear
// error messages rather than letting them silently default.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}
