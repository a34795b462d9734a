package batchclient

import (
	"github.com/google/uuid"

	"github.com/batchwerk/spobatch/internal/entitymeta"
)

// batchState is the lifecycle stage of a Batch: Open -> Executing ->
// Executed -> Reaped. Append operations are only legal in Open; the
// client transitions Open -> Executing -> Executed inside ExecuteBatch,
// and drops any Executed batch to Reaped (by removing it from the owned
// map) at the start of the client's *next* ExecuteBatch call.
type batchState int

const (
	stateOpen batchState = iota
	stateExecuting
	stateExecuted
)

// Batch is an ordered container of requests with a stable GUID identity.
// Not safe for concurrent mutation; see the concurrency notes on
// BatchClient.
type Batch struct {
	ID string

	state batchState

	// order, requests together form an insertion-ordered mapping from a
	// request's stable order index to the request itself. nextOrder is
	// the next index to assign; it is never reused, even after dedup
	// removes a request, so order values stay unique within a batch's
	// lifetime (though no longer contiguous after dedup).
	order      []int
	requests   map[int]*Request
	nextOrder  int

	// partiallyDispatched is set by the dispatcher when a split batch's
	// REST leg completed but the GRAPH leg failed or was cancelled before
	// running. See ErrPartiallyDispatched.
	partiallyDispatched bool
}

// newBatch constructs an empty, Open batch with a fresh GUID identity, or
// the supplied id when joining an existing in-flight batch via
// BatchClient.EnsureBatchByID(id).
func newBatch(id string) *Batch {
	if id == "" {
		id = uuid.NewString()
	}
	return &Batch{
		ID:       id,
		state:    stateOpen,
		requests: make(map[int]*Request),
	}
}

// Executed reports whether this batch has completed dispatch.
func (b *Batch) Executed() bool { return b.state == stateExecuted }

// PartiallyDispatched reports whether a split batch's REST leg ran before
// its GRAPH leg failed or was cancelled. See ErrPartiallyDispatched.
func (b *Batch) PartiallyDispatched() bool { return b.partiallyDispatched }

// Len returns the number of requests currently queued in this batch.
func (b *Batch) Len() int { return len(b.order) }

// Requests returns the queued requests in insertion order. The returned
// slice is a fresh copy; mutating it does not affect the batch.
func (b *Batch) Requests() []*Request {
	out := make([]*Request, 0, len(b.order))
	for _, ord := range b.order {
		out = append(out, b.requests[ord])
	}
	return out
}

// GetRequest returns the request at the given order index, or nil if no
// such request exists in this batch (e.g. it was removed by dedup).
func (b *Batch) GetRequest(order int) *Request {
	return b.requests[order]
}

// Add appends a new request to the batch, assigning it the next stable
// order index, and returns that index. Only legal while the batch is Open;
// panics otherwise, since appending to an executing/executed batch is
// always a caller bug, not a recoverable runtime condition.
//
// family is the request's target API family. backupCall, when non-nil,
// must name FamilyREST: fall-back only ever runs Graph-to-REST, never the
// reverse, so a REST request is never given a backup call.
func (b *Batch) Add(
	model Model,
	info entitymeta.Info,
	method Method,
	family Family,
	primaryCall Call,
	backupCall *Call,
	fromJSONCasting FromJSONCasting,
	postMappingJSON PostMappingJSON,
) int {
	if b.state != stateOpen {
		panic("batchclient: Add called on a batch that is no longer Open")
	}
	if backupCall != nil && backupCall.Family != FamilyREST {
		panic("batchclient: backupCall must target FamilyREST")
	}

	order := b.nextOrder
	b.nextOrder++

	req := &Request{
		order:           order,
		method:          method,
		apiFamily:       family,
		primaryCall:     primaryCall,
		backupCall:      backupCall,
		model:           model,
		entityInfo:      info,
		fromJSONCasting: fromJSONCasting,
		postMappingJSON: postMappingJSON,
	}

	b.order = append(b.order, order)
	b.requests[order] = req

	return order
}

// removeRequest drops a request from the batch by order, used by the
// deduplicator to remove later duplicate GETs. The order index is not
// reused.
func (b *Batch) removeRequest(order int) {
	delete(b.requests, order)
	for i, ord := range b.order {
		if ord == order {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// useGraphBatch reports whether every queued request targets GRAPH.
func (b *Batch) useGraphBatch() bool {
	if len(b.order) == 0 {
		return false
	}
	for _, ord := range b.order {
		if b.requests[ord].apiFamily != FamilyGraph {
			return false
		}
	}
	return true
}

// hasMixedApiTypes reports whether the batch contains both REST and GRAPH
// requests.
func (b *Batch) hasMixedApiTypes() bool {
	sawREST, sawGraph := false, false
	for _, ord := range b.order {
		switch b.requests[ord].apiFamily {
		case FamilyREST:
			sawREST = true
		case FamilyGraph:
			sawGraph = true
		}
		if sawREST && sawGraph {
			return true
		}
	}
	return false
}

// canFallBackToSPORest reports whether every GRAPH request in the batch
// carries a non-nil REST backup call.
func (b *Batch) canFallBackToSPORest() bool {
	for _, ord := range b.order {
		req := b.requests[ord]
		if req.apiFamily != FamilyGraph {
			continue
		}
		if req.backupCall == nil || req.backupCall.Family != FamilyREST {
			return false
		}
	}
	return true
}

// makeRestOnlyBatch rewrites every GRAPH request in the batch to use its
// REST backup call as the primary, re-tagging it FamilyREST. Requires
// canFallBackToSPORest to hold; callers must check that first via the
// family resolver, since this returns a PreconditionError rather than
// guessing at a partial rewrite.
func (b *Batch) makeRestOnlyBatch() error {
	if !b.canFallBackToSPORest() {
		return &PreconditionError{
			Operation: "makeRestOnlyBatch",
			Reason:    "one or more GRAPH requests lack a REST backup call",
		}
	}
	for _, ord := range b.order {
		req := b.requests[ord]
		if req.apiFamily == FamilyGraph {
			req.promoteBackupToPrimary()
		}
	}
	return nil
}
