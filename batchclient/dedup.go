package batchclient

// deduplicate scans all GET requests in insertion order and removes later
// duplicates whose primary call (URL + body) matches an earlier one.
// Non-GET requests are never removed: two identical POSTs are legitimate
// independent creations, not duplicates.
func deduplicate(b *Batch) {
	seen := make(map[string]bool)
	var toRemove []int

	for _, req := range b.Requests() {
		if req.method != MethodGet {
			continue
		}
		key := req.dedupKey()
		if seen[key] {
			toRemove = append(toRemove, req.order)
			continue
		}
		seen[key] = true
	}

	for _, order := range toRemove {
		b.removeRequest(order)
	}
}
