package batchclient

// dispatchPlan is the outcome of resolving a batch's family mix: either
// one unit (the whole batch, dispatched against a single family) or two
// units (a REST-first, GRAPH-second split that must run sequentially).
type dispatchPlan struct {
	units []dispatchUnit
}

// dispatchUnit names which family a batch (or split sibling batch) must
// be dispatched against.
type dispatchUnit struct {
	family Family
	batch  *Batch
}

// resolveDispatchPlan applies the family decision table from the spec:
//
//	mixed=false, useGraphBatch=true  -> dispatch whole batch via GRAPH
//	mixed=false, useGraphBatch=false -> dispatch whole batch via REST
//	mixed=true,  fallback possible   -> rewrite to REST-only, dispatch via REST
//	mixed=true,  fallback impossible -> split into REST then GRAPH siblings
//
// The REST/GRAPH split preserves each request's original order by moving
// requests into sibling Batch values rather than renumbering them.
func resolveDispatchPlan(b *Batch) (*dispatchPlan, error) {
	if b.Len() == 0 {
		return &dispatchPlan{}, nil
	}

	mixed := b.hasMixedApiTypes()

	if !mixed {
		family := FamilyREST
		if b.useGraphBatch() {
			family = FamilyGraph
		}
		return &dispatchPlan{units: []dispatchUnit{{family: family, batch: b}}}, nil
	}

	if b.canFallBackToSPORest() {
		if err := b.makeRestOnlyBatch(); err != nil {
			return nil, err
		}
		return &dispatchPlan{units: []dispatchUnit{{family: FamilyREST, batch: b}}}, nil
	}

	restBatch, graphBatch := splitByFamily(b)
	units := []dispatchUnit{}
	if restBatch.Len() > 0 {
		units = append(units, dispatchUnit{family: FamilyREST, batch: restBatch})
	}
	if graphBatch.Len() > 0 {
		units = append(units, dispatchUnit{family: FamilyGraph, batch: graphBatch})
	}
	return &dispatchPlan{units: units}, nil
}

// splitByFamily partitions a mixed batch's requests into two sibling
// batches by their current family, each request keeping its original
// order value. The siblings are scratch containers used only for framing
// and dispatch; responses attached to their requests are the same
// *Request values shared with the original batch, so the caller sees
// results on the original batch's requests once dispatch completes.
func splitByFamily(b *Batch) (rest, graph *Batch) {
	rest = newBatch(b.ID + "-rest")
	graph = newBatch(b.ID + "-graph")

	for _, req := range b.Requests() {
		switch req.apiFamily {
		case FamilyREST:
			rest.order = append(rest.order, req.order)
			rest.requests[req.order] = req
		case FamilyGraph:
			graph.order = append(graph.order, req.order)
			graph.requests[req.order] = req
		}
	}

	return rest, graph
}
