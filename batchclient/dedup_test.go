package batchclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeduplicationLaw is the "Deduplication law" testable property: for
// any batch, dedup keeps the first occurrence of each distinct GET call
// and removes later duplicates, while POSTs with identical bodies survive
// untouched.
func TestDeduplicationLaw(t *testing.T) {
	b := newBatch("")

	first := b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyREST,
		Call{RequestURL: "https://host/sites/a/_api/web"}, nil, nil, nil)
	dup := b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyREST,
		Call{RequestURL: "https://host/sites/a/_api/web"}, nil, nil, nil)
	distinct := b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyREST,
		Call{RequestURL: "https://host/sites/a/_api/lists"}, nil, nil, nil)

	require.Equal(t, 3, b.Len())

	deduplicate(b)

	assert.Equal(t, 2, b.Len())
	assert.NotNil(t, b.GetRequest(first))
	assert.Nil(t, b.GetRequest(dup))
	assert.NotNil(t, b.GetRequest(distinct))
}

func TestDeduplicationPreservesIdenticalNonGets(t *testing.T) {
	b := newBatch("")

	body := []byte(`{"Title":"a"}`)
	o0 := b.Add(newFakeModel(nil), testEntityInfo, MethodPost, FamilyREST,
		Call{RequestURL: "https://host/sites/a/_api/web/lists", JSONBody: body}, nil, nil, nil)
	o1 := b.Add(newFakeModel(nil), testEntityInfo, MethodPost, FamilyREST,
		Call{RequestURL: "https://host/sites/a/_api/web/lists", JSONBody: body}, nil, nil, nil)

	deduplicate(b)

	assert.Equal(t, 2, b.Len())
	assert.NotNil(t, b.GetRequest(o0))
	assert.NotNil(t, b.GetRequest(o1))
}
