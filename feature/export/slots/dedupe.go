package slots

import (
	"sort"

	"quote-manager/core/extract"
)

// cardState tracks what has already been accepted for one card identity.
type cardState struct {
	ranges  []SpanRange
	itemIDs map[string]struct{}
	byAnchr map[int]*CanonicalSlotEntry

	// extent records, per anchor, the highest slot claimed by a suppressed
	// replica. Replicas are the only record of a card's width when the
	// anchor entry never declared a span, so the width is reconstructed
	// from them after the pass.
	extent map[int]int
}

// nearestBelow returns the accepted entry with the highest anchor at or
// below slot, if any.
func (s *cardState) nearestBelow(slot int) *CanonicalSlotEntry {
	var best *CanonicalSlotEntry
	for anchor, canon := range s.byAnchr {
		if anchor <= slot && (best == nil || anchor > best.AnchorSlot) {
			best = canon
		}
	}
	return best
}

func (s *cardState) covers(slot int) (int, bool) {
	for _, r := range s.ranges {
		if r.Contains(slot) {
			return r.Anchor, true
		}
	}
	return 0, false
}

// Dedupe consumes raw slot entries, possibly gathered from multiple sources,
// and yields one canonical entry per physical card occurrence. Callers must
// append fallback (draft) entries after primary ones: the pass is first-wins
// per (identity, anchor), so drafts only fill gaps.
func Dedupe(entries []RawSlotEntry) []CanonicalSlotEntry {
	canonical, _ := DedupeWithStats(entries, SourcePrimary)
	return canonical
}

// DedupeWithStats is Dedupe with per-pass counters for the export summary.
// The source tag is recorded on every accepted entry; use DedupeSources to
// merge differently tagged lists.
func DedupeWithStats(entries []RawSlotEntry, source Source) ([]CanonicalSlotEntry, Stats) {
	tagged := make([]taggedEntry, len(entries))
	for i, e := range entries {
		tagged[i] = taggedEntry{entry: e, source: source}
	}
	return dedupe(tagged)
}

// DedupeSources merges primary entries and draft fallbacks, in that order,
// into one canonical list.
func DedupeSources(primary, drafts []RawSlotEntry) ([]CanonicalSlotEntry, Stats) {
	tagged := make([]taggedEntry, 0, len(primary)+len(drafts))
	for _, e := range primary {
		tagged = append(tagged, taggedEntry{entry: e, source: SourcePrimary})
	}
	for _, e := range drafts {
		tagged = append(tagged, taggedEntry{entry: e, source: SourceDraft})
	}
	return dedupe(tagged)
}

type taggedEntry struct {
	entry  RawSlotEntry
	source Source
}

func dedupe(entries []taggedEntry) ([]CanonicalSlotEntry, Stats) {
	stats := Stats{Seen: len(entries)}
	cards := make(map[string]*cardState)
	accepted := make([]*CanonicalSlotEntry, 0, len(entries))

	for _, t := range entries {
		entry := t.entry
		identity := Identity(entry)
		ownSlot, hasSlot := extract.Int(entry, SlotNumberKeys)
		if !hasSlot {
			// Some shapes only record the anchor; fall back to it.
			if anchor, ok := extract.Int(entry, AnchorKeys); ok {
				ownSlot = anchor
				hasSlot = true
			}
		}
		if identity == "" || !hasSlot {
			stats.Malformed++
			continue
		}

		state := cards[identity]
		if state == nil {
			state = &cardState{
				itemIDs: make(map[string]struct{}),
				byAnchr: make(map[int]*CanonicalSlotEntry),
				extent:  make(map[int]int),
			}
			cards[identity] = state
		}

		desc := ResolveSpan(entry, ownSlot, state.ranges)

		if desc.SecondaryReplica {
			stats.Replicas++
			if ownSlot > state.extent[desc.AnchorSlot] {
				state.extent[desc.AnchorSlot] = ownSlot
			}
			continue
		}

		// First entry at an anchor wins; a re-claim of the exact anchor is
		// a duplicate, a claim inside an accepted span is a replica.
		if _, taken := state.byAnchr[desc.AnchorSlot]; taken {
			stats.Duplicates++
			continue
		}
		if anchor, inside := state.covers(ownSlot); inside {
			stats.Replicas++
			if ownSlot > state.extent[anchor] {
				state.extent[anchor] = ownSlot
			}
			continue
		}

		itemID := extract.String(entry, ItemIDKeys)
		if itemID != "" {
			if _, dup := state.itemIDs[itemID]; dup {
				stats.Duplicates++
				continue
			}
			state.itemIDs[itemID] = struct{}{}
		}

		subConfig, _ := extract.Field(entry, SubConfigKeys)
		canon := &CanonicalSlotEntry{
			Identity:   identity,
			AnchorSlot: desc.AnchorSlot,
			Span:       desc.Span,
			CardName:   extract.String(entry, CardNameKeys),
			PartNumber: extract.String(entry, PartNumberKeys),
			ItemID:     itemID,
			SubConfig:  subConfig,
			Source:     t.source,
		}
		state.ranges = append(state.ranges, SpanRange{Anchor: desc.AnchorSlot, Span: desc.Span})
		state.byAnchr[desc.AnchorSlot] = canon
		accepted = append(accepted, canon)
	}

	// Widen spans to cover suppressed replicas, whichever order they arrived
	// in. A flag-only replica carries no anchor reference, so its extent is
	// keyed by its own slot; reattach those to the nearest accepted anchor
	// below before widening.
	for _, state := range cards {
		for anchor, maxSlot := range state.extent {
			canon, ok := state.byAnchr[anchor]
			if !ok {
				canon = state.nearestBelow(anchor)
			}
			if canon == nil {
				continue
			}
			if width := maxSlot - canon.AnchorSlot + 1; width > canon.Span {
				canon.Span = width
			}
		}
	}

	out := make([]CanonicalSlotEntry, len(accepted))
	for i, c := range accepted {
		out[i] = *c
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AnchorSlot != out[j].AnchorSlot {
			return out[i].AnchorSlot < out[j].AnchorSlot
		}
		return out[i].Identity < out[j].Identity
	})
	stats.Accepted = len(out)
	return out, stats
}

// Raw renders a canonical entry back into the current raw shape. It exists
// so canonical output can be fed through Dedupe again, which must be a
// no-op; the export summary relies on that when draft merges are re-run.
func (c CanonicalSlotEntry) Raw() RawSlotEntry {
	raw := RawSlotEntry{
		"slot":        c.AnchorSlot,
		"span":        c.Span,
		"card_name":   c.CardName,
		"part_number": c.PartNumber,
	}
	if c.ItemID != "" {
		raw["item_id"] = c.ItemID
	}
	if c.SubConfig != nil {
		raw["sub_configuration"] = c.SubConfig
	}
	return raw
}
