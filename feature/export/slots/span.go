package slots

import "quote-manager/core/extract"

// SpanRange is an accepted slot occupancy [Anchor, Anchor+Span).
type SpanRange struct {
	Anchor int
	Span   int
}

// Contains reports whether slot falls inside the range.
func (r SpanRange) Contains(slot int) bool {
	return slot >= r.Anchor && slot < r.Anchor+r.Span
}

// ResolveSpan computes the span descriptor for one raw entry. ownSlot is the
// entry's own slot number; seen holds the span ranges already accepted for
// the same card identity, in merge order.
//
// Replica detection reconciles three vocabularies that historical producers
// never agreed on, checked in fixed precedence:
//  1. an explicit secondary/replica/continuation flag,
//  2. a shared-from slot that differs from the entry's own slot,
//  3. positional inference: the own slot is strictly past an anchor and
//     inside that anchor's span (declared on this entry or already seen).
func ResolveSpan(entry RawSlotEntry, ownSlot int, seen []SpanRange) SpanDescriptor {
	span, _ := extract.Int(entry, SpanKeys)
	if span < 1 {
		span = 1
	}

	anchor, hasAnchor := extract.Int(entry, AnchorKeys)
	if !hasAnchor {
		anchor = ownSlot
	}

	desc := SpanDescriptor{Span: span, AnchorSlot: anchor}

	// 1. Explicit flag.
	if extract.Bool(entry, ReplicaFlagKeys) {
		desc.SecondaryReplica = true
		return desc
	}

	// 2. Shared-from pointing at another slot.
	if shared, ok := extract.Int(entry, SharedFromKeys); ok && shared != ownSlot {
		desc.SecondaryReplica = true
		return desc
	}

	// 3a. The entry itself declares an anchor below its own slot and sits
	// inside that declared span.
	if hasAnchor && anchor != ownSlot && ownSlot > anchor && ownSlot < anchor+span {
		desc.SecondaryReplica = true
		return desc
	}

	// 3b. A previously accepted span for the same card already covers this
	// slot past its anchor.
	for _, r := range seen {
		if ownSlot > r.Anchor && r.Contains(ownSlot) {
			desc.AnchorSlot = r.Anchor
			desc.SecondaryReplica = true
			return desc
		}
	}

	return desc
}
