package selection

// ResolveRange returns the items strictly between anchor and target in
// eligible order, whichever of the two comes first. Both endpoints are
// excluded. An anchor or target that is not eligible (never clicked, hidden
// or removed since) yields an empty range.
func ResolveRange(eligible []ItemID, anchor, target ItemID) []ItemID {
	if anchor == "" || target == "" {
		return nil
	}

	from, to := -1, -1
	for i, id := range eligible {
		switch id {
		case anchor:
			from = i
		case target:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return nil
	}
	if from > to {
		from, to = to, from
	}
	if to-from < 2 {
		return nil
	}

	span := make([]ItemID, to-from-1)
	copy(span, eligible[from+1:to])
	return span
}
