package model

import (
	"sync"

	"github.com/batchwerk/spobatch/batchclient"
)

// Collection is a minimal ordered, mutable group of Entity values,
// implementing batchclient.ManageableCollection so the reconciler can
// detach merged-away or deleted entities from it.
type Collection struct {
	mu      sync.RWMutex
	members []*Entity
}

// NewCollection builds a Collection seeded with members, wiring each
// member's parent back-reference to this collection.
func NewCollection(members ...*Entity) *Collection {
	c := &Collection{}
	for _, m := range members {
		c.Add(m)
	}
	return c
}

// Add appends an entity to the collection and sets its parent.
func (c *Collection) Add(e *Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e.setParent(c)
	c.members = append(c.members, e)
}

// Remove implements batchclient.ManageableCollection.
func (c *Collection) Remove(model batchclient.TransientObject) {
	e, ok := model.(*Entity)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range c.members {
		if m == e {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return
		}
	}
}

// Members returns a snapshot of the collection's current entities.
func (c *Collection) Members() []*Entity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Entity, len(c.members))
	copy(out, c.members)
	return out
}

// Len reports the number of entities currently in the collection.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.members)
}
