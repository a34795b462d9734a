package batchclient

import (
	"errors"
	"fmt"
)

// ErrPartiallyDispatched is returned by ExecuteBatch when a REST/GRAPH
// split batch had its REST leg dispatched successfully before the GRAPH
// leg failed or was cancelled. The REST sub-requests already ran and are
// not generally idempotent, so ExecuteBatch refuses to silently resend
// them: the caller must inspect the batch's responses and construct a
// fresh batch for whatever GRAPH-only work remains.
var ErrPartiallyDispatched = errors.New("batchclient: batch partially dispatched; REST leg already executed, construct a new batch for remaining work")

// TransportFailure reports a non-2xx status at the HTTP envelope level
// (the whole $batch call failed, not an individual sub-request).
type TransportFailure struct {
	URL    string
	Status int
	Body   string
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("batchclient: transport failure for %s: status %d: %s", e.URL, e.Status, e.Body)
}

// SubRequestFailure reports a non-2xx status on one sub-response within an
// otherwise successfully transported $batch call.
type SubRequestFailure struct {
	URL    string
	Status int
	Body   string
}

func (e *SubRequestFailure) Error() string {
	return fmt.Sprintf("batchclient: sub-request failure for %s: status %d: %s", e.URL, e.Status, e.Body)
}

// MalformedResponseError reports that a REST multipart response or a Graph
// JSON envelope could not be parsed into sub-responses at all.
type MalformedResponseError struct {
	Family Family
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("batchclient: malformed %s response: %s", e.Family, e.Reason)
}

// PreconditionError reports that an operation was attempted under
// conditions the caller should have checked first, such as calling
// makeRestOnlyBatch on a batch that is not fall-back eligible.
type PreconditionError struct {
	Operation string
	Reason    string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("batchclient: precondition failed for %s: %s", e.Operation, e.Reason)
}
