package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDedupe_SpanReplicaCollapses tests that a card with a slot-4 replica of
// a slot-3 anchor collapses into one canonical entry spanning both slots,
// even though the anchor entry never declared a span.
func TestDedupe_SpanReplicaCollapses(t *testing.T) {
	entries := []RawSlotEntry{
		{"slot": 3, "card_name": "DS3 Card", "part_number": "DS3-12"},
		{"slot": 4, "card_name": "DS3 Card", "part_number": "DS3-12", "shared_from_slot": 3},
	}

	canonical, stats := DedupeWithStats(entries, SourcePrimary)

	assert.Len(t, canonical, 1)
	assert.Equal(t, 3, canonical[0].AnchorSlot)
	assert.Equal(t, 2, canonical[0].Span)
	assert.Equal(t, "DS3 Card", canonical[0].CardName)
	assert.Equal(t, 1, stats.Replicas)
	assert.Equal(t, 1, stats.Accepted)
}

// TestDedupe_ReplicaBeforeAnchor tests that the merge is order-independent:
// the replica arriving first must not steal the anchor.
func TestDedupe_ReplicaBeforeAnchor(t *testing.T) {
	entries := []RawSlotEntry{
		{"slot": 4, "card_name": "DS3 Card", "part_number": "DS3-12", "shared_from_slot": 3, "anchor_slot": 3},
		{"slot": 3, "card_name": "DS3 Card", "part_number": "DS3-12"},
	}

	canonical, _ := DedupeWithStats(entries, SourcePrimary)

	assert.Len(t, canonical, 1)
	assert.Equal(t, 3, canonical[0].AnchorSlot)
	assert.Equal(t, 2, canonical[0].Span)
}

// TestDedupe_FlagOnlyReplicaWidensSpan tests replicas that carry only a
// secondary flag, with no anchor or shared-from reference. Their slot must
// still widen the anchor below them, in either arrival order.
func TestDedupe_FlagOnlyReplicaWidensSpan(t *testing.T) {
	anchor := RawSlotEntry{"slot": 3, "card_name": "DS3 Card", "part_number": "DS3-12"}
	replica := RawSlotEntry{"slot": 4, "card_name": "DS3 Card", "part_number": "DS3-12", "is_secondary": true}

	for name, entries := range map[string][]RawSlotEntry{
		"anchor first":  {anchor, replica},
		"replica first": {replica, anchor},
	} {
		t.Run(name, func(t *testing.T) {
			canonical, stats := DedupeWithStats(entries, SourcePrimary)

			assert.Len(t, canonical, 1)
			assert.Equal(t, 3, canonical[0].AnchorSlot)
			assert.Equal(t, 2, canonical[0].Span)
			assert.Equal(t, 1, stats.Replicas)
		})
	}
}

// TestDedupe_ExactDuplicates tests first-wins at the same anchor.
func TestDedupe_ExactDuplicates(t *testing.T) {
	entries := []RawSlotEntry{
		{"slot": 2, "card_name": "NIC", "part_number": "N-1", "span": 1},
		{"slot": 2, "card_name": "NIC", "part_number": "N-1", "span": 3},
	}

	canonical, stats := DedupeWithStats(entries, SourcePrimary)

	assert.Len(t, canonical, 1)
	assert.Equal(t, 1, canonical[0].Span) // first entry won
	assert.Equal(t, 1, stats.Duplicates)
}

// TestDedupe_ItemIDDuplicate tests that a persisted item id seen twice is a
// duplicate even at a different slot.
func TestDedupe_ItemIDDuplicate(t *testing.T) {
	entries := []RawSlotEntry{
		{"slot": 2, "item_id": "itm-7", "card_name": "NIC"},
		{"slot": 5, "item_id": "itm-7", "card_name": "NIC"},
	}

	canonical, stats := DedupeWithStats(entries, SourcePrimary)

	assert.Len(t, canonical, 1)
	assert.Equal(t, 2, canonical[0].AnchorSlot)
	assert.Equal(t, 1, stats.Duplicates)
}

// TestDedupe_SameIdentityDisjointSlots tests that the same card model in two
// disjoint slots yields two canonical entries.
func TestDedupe_SameIdentityDisjointSlots(t *testing.T) {
	entries := []RawSlotEntry{
		{"slot": 1, "card_name": "NIC", "part_number": "N-1"},
		{"slot": 5, "card_name": "NIC", "part_number": "N-1"},
	}

	canonical, _ := DedupeWithStats(entries, SourcePrimary)

	assert.Len(t, canonical, 2)
	assert.Equal(t, 1, canonical[0].AnchorSlot)
	assert.Equal(t, 5, canonical[1].AnchorSlot)
}

// TestDedupe_Malformed tests that entries without identity or slot are
// skipped and counted, never panicking.
func TestDedupe_Malformed(t *testing.T) {
	entries := []RawSlotEntry{
		{"card_name": "No Slot"},
		{"slot": 2},
		{"slot": 3, "card_name": "Kept", "part_number": "K-1"},
		nil,
	}

	canonical, stats := DedupeWithStats(entries, SourcePrimary)

	assert.Len(t, canonical, 1)
	assert.Equal(t, "Kept", canonical[0].CardName)
	assert.Equal(t, 3, stats.Malformed)
}

// TestDedupe_AnchorOnlyEntry tests the fallback to the anchor field for
// shapes that never recorded a plain slot number.
func TestDedupe_AnchorOnlyEntry(t *testing.T) {
	entries := []RawSlotEntry{
		{"anchor_slot": 6, "card_name": "OC3", "part_number": "OC-3"},
	}

	canonical, stats := DedupeWithStats(entries, SourcePrimary)

	assert.Len(t, canonical, 1)
	assert.Equal(t, 6, canonical[0].AnchorSlot)
	assert.Zero(t, stats.Malformed)
}

// TestDedupeSources_DraftFillsGaps tests that draft entries only fill slots
// the primary source left unclaimed.
func TestDedupeSources_DraftFillsGaps(t *testing.T) {
	primary := []RawSlotEntry{
		{"slot": 1, "card_name": "NIC", "part_number": "N-1"},
	}
	drafts := []RawSlotEntry{
		// Same card, same anchor: ignored.
		{"slot": 1, "card_name": "NIC", "part_number": "N-1", "span": 4},
		// New slot: accepted, tagged as draft.
		{"slot": 2, "card_name": "OC3", "part_number": "OC-3"},
	}

	canonical, stats := DedupeSources(primary, drafts)

	assert.Len(t, canonical, 2)
	assert.Equal(t, SourcePrimary, canonical[0].Source)
	assert.Equal(t, 1, canonical[0].Span)
	assert.Equal(t, SourceDraft, canonical[1].Source)
	assert.Equal(t, "OC3", canonical[1].CardName)
	assert.Equal(t, 1, stats.Duplicates)
}

// TestDedupe_Idempotent tests that feeding canonical output through another
// pass changes nothing.
func TestDedupe_Idempotent(t *testing.T) {
	entries := []RawSlotEntry{
		{"slot": 3, "card_name": "DS3 Card", "part_number": "DS3-12"},
		{"slot": 4, "card_name": "DS3 Card", "part_number": "DS3-12", "shared_from_slot": 3},
		{"slot": 1, "item_id": "itm-1", "card_name": "CPU", "part_number": "C-9"},
		{"slot": 1, "item_id": "itm-1", "card_name": "CPU", "part_number": "C-9"},
		{"slot": 6, "card_name": "Blank", "part_number": "B-0", "span": 2},
	}

	first := Dedupe(entries)

	raw := make([]RawSlotEntry, len(first))
	for i, c := range first {
		raw[i] = c.Raw()
	}
	second := Dedupe(raw)

	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Identity, second[i].Identity)
		assert.Equal(t, first[i].AnchorSlot, second[i].AnchorSlot)
		assert.Equal(t, first[i].Span, second[i].Span)
	}
}

// TestDedupe_MixedVocabularies tests a merge across the historical entry
// shapes in one pass.
func TestDedupe_MixedVocabularies(t *testing.T) {
	entries := []RawSlotEntry{
		{"slotNumber": "1", "cardName": "CPU", "partNumber": "C-9"},
		{"SLOT_NUMBER": 2, "card": "NIC", "part_no": "N-1"},
		{"slot": 3, "name": "DS3", "pn": "DS3-12", "slotSpan": "2"},
		{"slot": 4, "name": "DS3", "pn": "DS3-12", "is_secondary": "true"},
	}

	canonical, stats := DedupeWithStats(entries, SourcePrimary)

	assert.Len(t, canonical, 3)
	assert.Zero(t, stats.Malformed)
	assert.Equal(t, 1, stats.Replicas)
	assert.Equal(t, 2, canonical[2].Span)
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name  string
		entry RawSlotEntry
		want  string
	}{
		{"item id wins", RawSlotEntry{"item_id": "itm-3", "part_number": "P", "card_name": "C"}, "item:itm-3"},
		{"composite fallback", RawSlotEntry{"part_number": "PN-1", "card_name": "GigE"}, "pn-1|gige"},
		{"case folded", RawSlotEntry{"part_number": "pn-1", "card_name": "GIGE"}, "pn-1|gige"},
		{"name only", RawSlotEntry{"card_name": "GigE"}, "|gige"},
		{"no signals", RawSlotEntry{"slot": 3}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identity(tt.entry))
		})
	}
}
