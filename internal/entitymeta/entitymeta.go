// Package entitymeta provides a registration-time metadata table mapping a
// Go type to the field names the batch client needs to identify and
// reconcile instances of that type, replacing runtime reflection-based
// property lookup with a small typed lookup table.
//
// Domain models still expose their field values through the
// batchclient.Model capability interface (HasValue/GetValue); this package
// only knows the *names* of the REST and Graph key fields for a type, not
// how to read them.
package entitymeta

import (
	"fmt"
	"reflect"
	"sync"
)

// Info describes the metadata the batch client needs about an entity type:
// which field uniquely identifies an instance under each API family.
type Info struct {
	// RestKeyField is the property name the SharePoint REST API uses to
	// uniquely identify an instance of this entity type (e.g. "Id").
	RestKeyField string

	// GraphKeyField is the property name Microsoft Graph uses for the same
	// purpose (e.g. "id").
	GraphKeyField string
}

// KeyField returns the key field name for the given family, where
// useGraph selects the Graph-family field over the REST-family one.
func (i Info) KeyField(useGraph bool) string {
	if useGraph {
		return i.GraphKeyField
	}
	return i.RestKeyField
}

// Registry is a typed, registration-time metadata table. It is safe for
// concurrent use: registration typically happens once at process startup
// (in package init functions of domain model packages), while lookups
// happen throughout the lifetime of the process.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]Info
}

// NewRegistry returns an empty metadata registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[reflect.Type]Info)}
}

// Register associates Info with the concrete type of sample. sample may be
// a zero value of the type; only its type is inspected. Panics if the type
// is already registered, since re-registration under a different Info is
// almost always a bug (two packages disagreeing about a type's key field).
func (r *Registry) Register(sample any, info Info) {
	t := reflect.TypeOf(sample)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[t]; ok {
		panic(fmt.Sprintf("entitymeta: type %s already registered with %+v", t, existing))
	}
	r.entries[t] = info
}

// Lookup returns the Info registered for the concrete type of model and
// whether an entry was found.
func (r *Registry) Lookup(model any) (Info, bool) {
	t := reflect.TypeOf(model)

	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.entries[t]
	return info, ok
}
