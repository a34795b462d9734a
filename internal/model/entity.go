// Package model provides a minimal in-memory domain object graph
// implementing batchclient's Model/TransientObject/IDataModelParent/
// ManageableCollection capability interfaces, standing in for the
// generated SharePoint/Graph object model that a real consumer of
// batchclient would bring.
package model

import (
	"sync"

	"github.com/batchwerk/spobatch/batchclient"
)

// Entity is a generic domain object: a bag of named field values plus the
// bookkeeping batchclient needs to merge and delete-propagate it.
type Entity struct {
	mu     sync.RWMutex
	fields map[string]any

	parent  *Collection
	deleted bool
}

// NewEntity constructs an Entity seeded with the given fields. A nil map is
// treated as empty.
func NewEntity(fields map[string]any) *Entity {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Entity{fields: fields}
}

// HasValue implements batchclient.Model.
func (e *Entity) HasValue(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.fields[name]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// GetValue implements batchclient.Model.
func (e *Entity) GetValue(name string) any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fields[name]
}

// SetValue sets a field directly. Used by the JSON mapping helper to
// populate an Entity from a decoded sub-response body.
func (e *Entity) SetValue(name string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fields[name] = value
}

// Commit implements batchclient.TransientObject. This in-memory model has
// no separate "pending write" staging area, so Commit is a no-op; a real
// generated model would clear its dirty-field tracking here.
func (e *Entity) Commit() {}

// Merge implements batchclient.TransientObject: field values already
// present on e are kept; fields only present on other are copied over.
func (e *Entity) Merge(other batchclient.TransientObject) {
	o, ok := other.(*Entity)
	if !ok {
		return
	}
	o.mu.RLock()
	defer o.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range o.fields {
		if _, exists := e.fields[k]; !exists {
			e.fields[k] = v
		}
	}
}

// MarkDeleted implements batchclient.TransientObject.
func (e *Entity) MarkDeleted() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deleted = true
}

// Deleted reports whether MarkDeleted has been called.
func (e *Entity) Deleted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.deleted
}

// Parent implements batchclient.IDataModelParent.
func (e *Entity) Parent() batchclient.ManageableCollection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// setParent records the collection this entity currently belongs to, called
// by Collection.Add.
func (e *Entity) setParent(c *Collection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.parent = c
}
