// Package utils provides common utility functions shared across spobatch's
// internal packages.
//
// This file implements ID truncation and generation helpers used for log
// readability and for correlating internally-generated identifiers that
// don't need the global uniqueness guarantees of a GUID (batch and
// changeset identifiers use github.com/google/uuid directly instead).
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// idDisplayLength is the number of leading characters kept by TruncateIDSafe.
const idDisplayLength = 12

// TruncateIDSafe truncates an identifier (typically a GUID) to a short,
// human-readable form for operational logs, without panicking on IDs
// shorter than the display length.
func TruncateIDSafe(id string) string {
	if len(id) <= idDisplayLength {
		return id
	}
	return id[:idDisplayLength]
}

// GenerateID creates a unique 12-character hex identifier for correlation
// purposes where a full GUID would be overkill, such as ad-hoc CLI run
// identifiers. Uses crypto/rand to keep collisions vanishingly unlikely.
//
// Returns format: "a1b2c3d4e5f6" (12 hex characters).
func GenerateID() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
