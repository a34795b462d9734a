package batchclient

import (
	"fmt"

	"github.com/batchwerk/spobatch/internal/entitymeta"
)

// Method is the HTTP verb a Request is framed with.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Family identifies which of the two co-existing APIs a Request targets.
type Family string

const (
	FamilyREST  Family = "REST"
	FamilyGraph Family = "GRAPH"
)

func (f Family) String() string { return string(f) }

// Call is one concrete HTTP call a Request can be framed as: either its
// primary target, or the backup call to fall back to when a mixed batch
// is rewritten to a single family.
type Call struct {
	// RequestURL is the absolute or site-relative URL this call targets.
	// For a REST-family call this must contain the literal substring
	// "/_api/"; the REST framer partitions sub-batches on the prefix that
	// precedes it.
	RequestURL string

	// JSONBody is the request body for POST/PATCH calls, nil for GET/DELETE.
	JSONBody []byte

	// Family is only meaningful on a backup call: it names which family
	// the backup targets (normally FamilyREST, since Graph requests are
	// the ones that fall back to REST, never the reverse).
	Family Family
}

// FromJSONCasting and PostMappingJSON are caller-supplied callbacks
// invoked by the dispatcher once a sub-response body has been attached to
// a Request. FromJSONCasting runs first and is expected to cast/validate
// the raw JSON shape; PostMappingJSON runs after the external
// JsonMappingHelper has populated the bound model, for any follow-up work
// that depends on the now-populated model (e.g. resolving a nested
// collection). Either may be nil.
type FromJSONCasting func(responseJSON string) error
type PostMappingJSON func(model Model) error

// Request describes one queued operation: immutable after it is appended
// to a Batch, except for the two response fields populated exactly once by
// the dispatcher.
type Request struct {
	// order is the stable, 0-based, monotonically-assigned insertion index
	// within its batch. Never reassigned, even across dedup/split.
	order int

	method    Method
	apiFamily Family

	primaryCall Call
	backupCall  *Call // nil if this request has no fall-back

	// model is a weak back-reference to the domain object this request is
	// bound to. The batch client never re-inserts it into a collection;
	// ownership lives entirely on the model side.
	model Model

	entityInfo entitymeta.Info

	fromJSONCasting FromJSONCasting
	postMappingJSON PostMappingJSON

	// responseJSON and responseStatus are populated exactly once, by the
	// dispatcher, after a successful sub-response has been parsed.
	responseJSON   string
	responseStatus int
	responded      bool
}

// Order returns this request's stable 0-based insertion index.
func (r *Request) Order() int { return r.order }

// Method returns the HTTP verb this request is framed with.
func (r *Request) Method() Method { return r.method }

// Family returns the API family this request currently targets. After
// Batch.makeRestOnlyBatch rewrites a GRAPH request to use its backup call,
// Family reports FamilyREST.
func (r *Request) Family() Family { return r.apiFamily }

// PrimaryCall returns the call this request is currently framed against.
func (r *Request) PrimaryCall() Call { return r.primaryCall }

// BackupCall returns this request's fall-back call and whether one exists.
func (r *Request) BackupCall() (Call, bool) {
	if r.backupCall == nil {
		return Call{}, false
	}
	return *r.backupCall, true
}

// Model returns the domain object this request is bound to.
func (r *Request) Model() Model { return r.model }

// EntityInfo returns the key-field metadata registered for this request's
// model type.
func (r *Request) EntityInfo() entitymeta.Info { return r.entityInfo }

// ResponseJSON returns the raw JSON body attached by the dispatcher and
// whether a response has been attached yet.
func (r *Request) ResponseJSON() (string, bool) {
	return r.responseJSON, r.responded
}

// ResponseStatus returns the HTTP status attached by the dispatcher.
func (r *Request) ResponseStatus() int { return r.responseStatus }

// attachResponse records a sub-response against this request. Panics if
// called twice for the same request: a response is populated exactly
// once, and a second call indicates a framer bug (double-counted
// sub-response), not a recoverable runtime condition.
func (r *Request) attachResponse(status int, body string) {
	if r.responded {
		panic(fmt.Sprintf("batchclient: request order=%d already has a response attached", r.order))
	}
	r.responseStatus = status
	r.responseJSON = body
	r.responded = true
}

// promoteBackupToPrimary rewrites this request to use its backup call as
// the primary, re-tagging its family to match. Used by
// Batch.makeRestOnlyBatch; callers must have already verified a backup
// call exists.
func (r *Request) promoteBackupToPrimary() {
	r.primaryCall = *r.backupCall
	r.apiFamily = r.backupCall.Family
	r.backupCall = nil
}

// dedupKey is the equality key the deduplicator compares GET requests by:
// the primary call's URL and body text, concatenated.
func (r *Request) dedupKey() string {
	return r.primaryCall.RequestURL + "\x00" + string(r.primaryCall.JSONBody)
}
