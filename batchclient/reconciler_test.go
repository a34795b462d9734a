package batchclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMergeIdempotence is the "Merge idempotence" testable property:
// reconciling a batch whose GETs have no key-duplicates leaves models
// pointer-identical to before reconciliation.
func TestMergeIdempotence(t *testing.T) {
	b := newBatch("")

	modelA := newFakeModel(map[string]any{"Id": "a"})
	modelB := newFakeModel(map[string]any{"Id": "b"})

	b.Add(modelA, testEntityInfo, MethodGet, FamilyREST, Call{RequestURL: "https://host/_api/web('a')"}, nil, nil, nil)
	b.Add(modelB, testEntityInfo, MethodGet, FamilyREST, Call{RequestURL: "https://host/_api/web('b')"}, nil, nil, nil)

	reconcile(b)

	assert.False(t, modelA.deleted)
	assert.False(t, modelB.deleted)
	assert.Empty(t, modelA.mergedFrom)
	assert.Empty(t, modelB.mergedFrom)
}

func TestMergeDuplicateGets(t *testing.T) {
	b := newBatch("")

	collection := newFakeCollection()
	canonical := newFakeModel(map[string]any{"Id": "shared"})
	duplicate := newFakeModel(map[string]any{"Id": "shared"})
	duplicate.parent = collection
	collection.members = append(collection.members, duplicate)

	canonicalOrder := b.Add(canonical, testEntityInfo, MethodGet, FamilyREST, Call{RequestURL: "https://host/_api/a"}, nil, nil, nil)
	dupOrder := b.Add(duplicate, testEntityInfo, MethodGet, FamilyREST, Call{RequestURL: "https://host/_api/b"}, nil, nil, nil)
	require.Less(t, canonicalOrder, dupOrder)

	reconcile(b)

	assert.False(t, canonical.deleted)
	assert.True(t, duplicate.deleted)
	assert.Contains(t, canonical.mergedFrom, duplicate)
	assert.False(t, collection.contains(duplicate))
}

// TestDeletePropagation covers scenario 6: a DELETE request's bound model
// is flagged deleted and removed from its parent collection.
func TestDeletePropagation(t *testing.T) {
	b := newBatch("")

	collection := newFakeCollection()
	entity := newFakeModel(map[string]any{"Id": "e"})
	entity.parent = collection
	collection.members = append(collection.members, entity)

	b.Add(entity, testEntityInfo, MethodDelete, FamilyREST, Call{RequestURL: "https://host/_api/web('e')"}, nil, nil, nil)

	reconcile(b)

	assert.True(t, entity.deleted)
	assert.False(t, collection.contains(entity))
}
