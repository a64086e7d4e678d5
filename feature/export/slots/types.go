package slots

// RawSlotEntry is one occupancy claim for a slot, as decoded from any of
// the historical payload shapes (live editor state, draft snapshots,
// per-slot assignment maps). Fields are reached through core/extract with
// the candidate-key tables in keys.go; multiple raw entries may describe
// the same physical occupancy.
type RawSlotEntry map[string]any

// Source identifies where a raw entry came from. Primary sources are
// merged before draft fallbacks, so drafts only fill gaps.
type Source int

const (
	// SourcePrimary marks entries from the quote record itself.
	SourcePrimary Source = iota
	// SourceDraft marks entries from a persisted draft snapshot.
	SourceDraft
)

// SpanDescriptor describes how one raw entry relates to the physical card
// occupying it: how many slots the card spans, which slot is authoritative,
// and whether this entry is a redundant copy of a span recorded elsewhere.
type SpanDescriptor struct {
	// Span is the number of contiguous slots occupied, at least 1.
	Span int

	// AnchorSlot is the lowest-numbered slot of the card, the slot of
	// record for deduplication.
	AnchorSlot int

	// SecondaryReplica is true when the entry merely re-states a span
	// already anchored at another slot.
	SecondaryReplica bool
}

// CanonicalSlotEntry is one physical card occurrence after deduplication.
// For a given export pass no two canonical entries share the same Identity
// with an anchor inside the other's span.
type CanonicalSlotEntry struct {
	// Identity is the derived card identity key; see Identity().
	Identity string `json:"identity"`

	// AnchorSlot is the first slot the card occupies.
	AnchorSlot int `json:"anchor_slot"`

	// Span is the number of contiguous slots occupied.
	Span int `json:"span"`

	// CardName is the card's display name.
	CardName string `json:"card_name"`

	// PartNumber is the card's part number.
	PartNumber string `json:"part_number"`

	// ItemID is the persisted-item identifier, when one was present.
	ItemID string `json:"item_id,omitempty"`

	// SubConfig is the nested sub-configuration blob, if any. It is passed
	// through untouched for the level-4 resolver.
	SubConfig any `json:"-"`

	// Source records which merge source the winning entry came from.
	Source Source `json:"-"`
}

// DisplaySlotRow is one rendered row per physical slot a card occupies.
// A card spanning slots 3-4 produces two rows with the same Identity.
type DisplaySlotRow struct {
	// Slot is the physical slot number.
	Slot int `json:"slot"`

	// CardName is the card's display name.
	CardName string `json:"card_name"`

	// PartNumber is the card's part number.
	PartNumber string `json:"part_number"`

	// Identity ties the row back to its canonical card occurrence.
	Identity string `json:"identity"`
}

// Stats summarizes a deduplication pass for the export summary.
type Stats struct {
	// Seen is the number of raw entries consumed.
	Seen int `json:"seen"`

	// Accepted is the number of canonical entries produced.
	Accepted int `json:"accepted"`

	// Duplicates counts exact duplicates suppressed (same identity at the
	// same anchor, or same persisted item id).
	Duplicates int `json:"duplicates"`

	// Replicas counts secondary span copies suppressed.
	Replicas int `json:"replicas"`

	// Malformed counts entries skipped for missing any usable slot number.
	Malformed int `json:"malformed"`
}
