// Package logging provides ID formatting utilities for consistent ID display
// across all logging contexts in spobatch.
//
// Implements intelligent ID truncation that preserves full GUIDs in debug
// contexts while providing short forms in info/warning contexts, improving
// log readability without sacrificing traceability when detailed debugging
// is needed.
//
// ID FORMATTING STRATEGY:
//   - Debug logs: full GUIDs for complete traceability
//   - Info/Warn/Error/Success logs: truncated 12-character IDs for readability
package logging

import (
	"github.com/batchwerk/spobatch/internal/utils"
)

// FormatID formats an ID for logging based on the current log level context.
// Returns the full GUID for debug logging to ensure complete traceability
// during troubleshooting, while returning a truncated form for other log
// levels to improve readability in operational logs.
func FormatID(id string) string {
	if debugEnabled() {
		return id
	}
	return utils.TruncateIDSafe(id)
}

// FormatBatchID formats a batch GUID for logging with context-aware truncation.
//
// Usage: logging.Info("executing batch %s", logging.FormatBatchID(batch.ID))
func FormatBatchID(batchID string) string {
	return FormatID(batchID)
}

// FormatChangesetID formats a changeset GUID for logging with context-aware truncation.
func FormatChangesetID(changesetID string) string {
	return FormatID(changesetID)
}

// FormatRequestOrder formats a sub-request's stable order index for logging.
// Orders are small non-negative integers, not GUIDs, so no truncation is
// applied; this wrapper exists purely so call sites read consistently
// alongside FormatBatchID/FormatChangesetID.
func FormatRequestOrder(order int) int {
	return order
}
