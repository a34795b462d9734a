package batchclient

import (
	"context"

	"github.com/batchwerk/spobatch/internal/logging"
)

// BatchClient owns the set of in-flight batches and drives them through
// deduplication, family resolution, framing, dispatch, and reconciliation.
//
// Not safe for concurrent use: the owned batches map is mutated only by
// the caller's goroutine during EnsureBatch/ExecuteBatch, matching the
// single-threaded cooperative model described in the concurrency notes.
type BatchClient struct {
	batches    map[string]*Batch
	dispatcher *Dispatcher
}

// NewBatchClient constructs a client around the given dispatcher, which
// carries the authentication provider, transports, and JSON mapping
// helper this client's batches will be dispatched through.
func NewBatchClient(dispatcher *Dispatcher) *BatchClient {
	return &BatchClient{
		batches:    make(map[string]*Batch),
		dispatcher: dispatcher,
	}
}

// EnsureBatch returns a new, empty, Open batch with a fresh GUID identity.
func (c *BatchClient) EnsureBatch() *Batch {
	b := newBatch("")
	c.batches[b.ID] = b
	return b
}

// EnsureBatchByID performs an idempotent lookup-or-create keyed by id: an
// existing in-flight batch with that id is returned unchanged, otherwise a
// new Open batch is created under that id.
func (c *BatchClient) EnsureBatchByID(id string) *Batch {
	if b, ok := c.batches[id]; ok {
		return b
	}
	b := newBatch(id)
	c.batches[b.ID] = b
	return b
}

// ContainsBatch reports whether a batch with the given id is currently
// owned by this client (i.e. it exists and has not yet been reaped).
func (c *BatchClient) ContainsBatch(id string) bool {
	_, ok := c.batches[id]
	return ok
}

// GetBatchByID returns the owned batch with the given id, if any.
func (c *BatchClient) GetBatchByID(id string) (*Batch, bool) {
	b, ok := c.batches[id]
	return b, ok
}

// reap drops every Executed batch from the owned map. Called at the start
// of every ExecuteBatch, including for batches unrelated to the one about
// to execute, per the "reap on next execute" lifecycle rule.
func (c *BatchClient) reap() {
	for id, b := range c.batches {
		if b.Executed() {
			delete(c.batches, id)
		}
	}
}

// ExecuteBatch runs b through deduplication, family resolution/splitting,
// framing, dispatch, and (on success) reconciliation, exactly once.
//
// An empty batch short-circuits straight to Executed with no HTTP
// traffic. A batch that is already Executed is a no-op (reap has just
// dropped it from the owned map, but the value passed in is still
// Executed), matching the spec's
// "second ExecuteBatch of the same batch value is idempotent" rule. A
// batch flagged PartiallyDispatched from a prior failed split returns
// ErrPartiallyDispatched without touching the network again.
func (c *BatchClient) ExecuteBatch(ctx context.Context, b *Batch) error {
	c.reap()

	if b.partiallyDispatched {
		return ErrPartiallyDispatched
	}

	if b.Len() == 0 {
		b.state = stateExecuted
		return nil
	}

	if b.state != stateOpen {
		return nil
	}

	b.state = stateExecuting

	deduplicate(b)

	plan, err := resolveDispatchPlan(b)
	if err != nil {
		b.state = stateOpen
		return err
	}

	for i, unit := range plan.units {
		if err := c.dispatcher.dispatchUnit(ctx, unit); err != nil {
			if i > 0 {
				// The REST leg of a split already ran and is not
				// generally safe to resend; force the caller to build a
				// fresh batch for whatever GRAPH-only work remains.
				b.partiallyDispatched = true
			}
			b.state = stateOpen
			return err
		}
	}

	reconcile(b)

	b.state = stateExecuted
	logging.Info("executed batch %s (%d request(s))", logging.FormatBatchID(b.ID), b.Len())
	return nil
}
