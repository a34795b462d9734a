package batchclient

import (
	"reflect"
	"sort"
)

// dupKey groups GET results by concrete model type and key-field value,
// so two requests that happened to materialize the same logical entity
// (e.g. it appears in two different collections fetched in one batch)
// are recognized as duplicates of each other.
type dupKey struct {
	modelType reflect.Type
	value     any
}

// reconcile runs the post-execution merge/delete-propagation pass
// described in spec §4.7. It must only be called after every dispatch
// unit in a batch's plan has completed successfully.
func reconcile(b *Batch) {
	mergeDuplicateGets(b)
	propagateDeletes(b)
}

// mergeDuplicateGets groups GET requests by (modelType, keyFieldValue),
// and for every group with more than one member, folds every non-lowest-
// order request's model into the lowest-order (canonical) one, then
// removes the non-canonical model from its parent collection and flags
// it deleted.
func mergeDuplicateGets(b *Batch) {
	useGraph := b.useGraphBatch()

	groups := make(map[dupKey][]*Request)
	for _, req := range b.Requests() {
		if req.method != MethodGet || req.model == nil {
			continue
		}

		fieldName := req.entityInfo.KeyField(useGraph)
		if fieldName == "" || !req.model.HasValue(fieldName) {
			continue
		}

		k := dupKey{modelType: reflect.TypeOf(req.model), value: req.model.GetValue(fieldName)}
		groups[k] = append(groups[k], req)
	}

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}

		sort.Slice(group, func(i, j int) bool { return group[i].order < group[j].order })

		canonical, ok := group[0].model.(TransientObject)
		if !ok {
			continue
		}

		for _, dup := range group[1:] {
			other, ok := dup.model.(TransientObject)
			if !ok {
				continue
			}
			canonical.Merge(other)
			detachFromParent(other)
			other.MarkDeleted()
		}
	}
}

// propagateDeletes flags every DELETE request's bound model deleted and
// removes it from its parent collection.
func propagateDeletes(b *Batch) {
	for _, req := range b.Requests() {
		if req.method != MethodDelete || req.model == nil {
			continue
		}
		transient, ok := req.model.(TransientObject)
		if !ok {
			continue
		}
		detachFromParent(transient)
		transient.MarkDeleted()
	}
}

// detachFromParent removes model from its parent collection, if it
// exposes one. A model that never implements IDataModelParent (it has no
// notion of a parent collection) is left alone.
func detachFromParent(model TransientObject) {
	withParent, ok := model.(IDataModelParent)
	if !ok {
		return
	}
	parent := withParent.Parent()
	if parent == nil {
		return
	}
	parent.Remove(model)
}
