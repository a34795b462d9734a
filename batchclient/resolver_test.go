package batchclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSingleFamilyGraph(t *testing.T) {
	b := newBatch("")
	b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyGraph, Call{RequestURL: "me/drive/root"}, nil, nil, nil)

	plan, err := resolveDispatchPlan(b)
	require.NoError(t, err)
	require.Len(t, plan.units, 1)
	assert.Equal(t, FamilyGraph, plan.units[0].family)
	assert.Same(t, b, plan.units[0].batch)
}

func TestResolveSingleFamilyRest(t *testing.T) {
	b := newBatch("")
	b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyREST, Call{RequestURL: "https://host/sites/a/_api/web"}, nil, nil, nil)

	plan, err := resolveDispatchPlan(b)
	require.NoError(t, err)
	require.Len(t, plan.units, 1)
	assert.Equal(t, FamilyREST, plan.units[0].family)
}

func TestResolveMixedWithFallback(t *testing.T) {
	b := newBatch("")
	b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyREST, Call{RequestURL: "https://host/sites/a/_api/web"}, nil, nil, nil)
	b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyGraph, Call{RequestURL: "sites/{id}"},
		&Call{RequestURL: "https://host/sites/a/_api/web/lists", Family: FamilyREST}, nil, nil)

	plan, err := resolveDispatchPlan(b)
	require.NoError(t, err)
	require.Len(t, plan.units, 1)
	assert.Equal(t, FamilyREST, plan.units[0].family)
	assert.False(t, b.hasMixedApiTypes())
}

// TestResolveMixedWithoutFallbackSplits covers scenario 3 (split) and the
// "Partitioning"-adjacent requirement that a split preserves each
// request's original order across the two sibling batches.
func TestResolveMixedWithoutFallbackSplits(t *testing.T) {
	b := newBatch("")
	restOrder := b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyREST, Call{RequestURL: "https://host/sites/a/_api/web"}, nil, nil, nil)
	graphOrder := b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyGraph, Call{RequestURL: "sites/{id}"}, nil, nil, nil)

	plan, err := resolveDispatchPlan(b)
	require.NoError(t, err)
	require.Len(t, plan.units, 2)

	assert.Equal(t, FamilyREST, plan.units[0].family)
	assert.Equal(t, FamilyGraph, plan.units[1].family)

	restReq := plan.units[0].batch.GetRequest(restOrder)
	graphReq := plan.units[1].batch.GetRequest(graphOrder)
	require.NotNil(t, restReq)
	require.NotNil(t, graphReq)
	assert.Equal(t, restOrder, restReq.order)
	assert.Equal(t, graphOrder, graphReq.order)
}

func TestResolveEmptyBatchProducesNoUnits(t *testing.T) {
	b := newBatch("")

	plan, err := resolveDispatchPlan(b)
	require.NoError(t, err)
	assert.Empty(t, plan.units)
}
