package batchclient

import (
	"context"
	"net/http"
)

// AuthenticationProvider adds credentials to an outbound HTTP request
// before it is sent. Implementations mutate req in place (typically by
// setting an Authorization header) and must respect ctx cancellation.
type AuthenticationProvider interface {
	Authenticate(ctx context.Context, targetURI string, req *http.Request) error
}

// TransportResponse is the normalized shape both transports hand back to
// the dispatcher: an HTTP status code, the response headers, and the body
// read fully into memory as text (batch payloads are small; streaming adds
// no value here and the framers need the whole body anyway).
type TransportResponse struct {
	Status  int
	Headers http.Header
	Body    string
}

// RestTransport sends one already-framed multipart/mixed $batch request to
// the SharePoint REST family and returns the raw response.
type RestTransport interface {
	Send(ctx context.Context, req *http.Request) (*TransportResponse, error)
}

// GraphTransport sends one already-framed JSON $batch request to the
// Microsoft Graph family and returns the raw response. Kept as a distinct
// interface from RestTransport (rather than one shared Transport type)
// because the two families are authenticated and based against different
// hosts, and a caller may legitimately want independent retry/backoff
// policy per family.
type GraphTransport interface {
	Send(ctx context.Context, req *http.Request) (*TransportResponse, error)
}

// JsonMappingHelper reads a request's attached response JSON and populates
// the request's bound domain model. Left external because the mapping from
// a JSON fragment to a concrete domain type is a property of the domain
// model graph, not of the batching engine.
type JsonMappingHelper interface {
	Map(req *Request) error
}

// Model is the minimal capability every value bound to a Request must
// implement: the batch client needs to read field values by name (for
// reconciliation key comparison) without resorting to reflection.
type Model interface {
	// HasValue reports whether the named field currently holds a non-null,
	// non-zero value that can participate in key comparison.
	HasValue(fieldName string) bool

	// GetValue returns the named field's value as a comparable key. Only
	// called after HasValue has reported true for the same name.
	GetValue(fieldName string) any
}

// TransientObject is a domain model capable of tracking dirty state and
// committing or merging it after a successful mutation.
type TransientObject interface {
	Model

	// Commit clears dirty tracking after a successful PATCH.
	Commit()

	// Merge folds another instance's properties and child collections into
	// this (canonical) instance, used by the reconciler when two requests
	// in the same batch resolved to the same logical entity.
	Merge(other TransientObject)

	// MarkDeleted flags this instance as deleted. The model remains valid
	// Go memory (callers may still hold a reference) but is logically gone.
	MarkDeleted()
}

// IDataModelParent exposes the parent collection a model currently belongs
// to, or nil if it has none (e.g. it was never attached, or was already
// removed).
type IDataModelParent interface {
	Parent() ManageableCollection
}

// ManageableCollection is a parent collection capable of removing a member
// by identity, used to sever ownership when the reconciler determines a
// model is either a deleted entity or a non-canonical duplicate.
type ManageableCollection interface {
	Remove(model TransientObject)
}
