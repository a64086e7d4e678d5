package slots

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExpand_SpanningCard tests that a span-2 card yields two rows with the
// same identity.
func TestExpand_SpanningCard(t *testing.T) {
	canonical := []CanonicalSlotEntry{
		{Identity: "ds3-12|ds3", AnchorSlot: 3, Span: 2, CardName: "DS3", PartNumber: "DS3-12"},
	}

	rows := Expand(canonical)

	assert.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Slot)
	assert.Equal(t, 4, rows[1].Slot)
	assert.Equal(t, rows[0].Identity, rows[1].Identity)
	assert.Equal(t, "DS3", rows[1].CardName)
}

// TestExpand_SortedBySlot tests ordering regardless of input order.
func TestExpand_SortedBySlot(t *testing.T) {
	canonical := []CanonicalSlotEntry{
		{Identity: "b", AnchorSlot: 5, Span: 1},
		{Identity: "a", AnchorSlot: 1, Span: 2},
	}

	rows := Expand(canonical)

	assert.True(t, sort.SliceIsSorted(rows, func(i, j int) bool {
		return rows[i].Slot < rows[j].Slot
	}))
	assert.Equal(t, []int{1, 2, 5}, []int{rows[0].Slot, rows[1].Slot, rows[2].Slot})
}

// TestExpand_ZeroSpanTreatedAsOne tests that a canonical entry without a
// usable span still emits its anchor row.
func TestExpand_ZeroSpanTreatedAsOne(t *testing.T) {
	rows := Expand([]CanonicalSlotEntry{{Identity: "x", AnchorSlot: 2}})
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Slot)
}

// TestExpand_NoDuplicateIdentitySlotPairs tests the coverage property: row
// count equals the sum of spans, and no (identity, slot) pair repeats, even
// with a pathological overlapping input.
func TestExpand_NoDuplicateIdentitySlotPairs(t *testing.T) {
	canonical := []CanonicalSlotEntry{
		{Identity: "a", AnchorSlot: 1, Span: 3},
		{Identity: "b", AnchorSlot: 2, Span: 2},
		{Identity: "a", AnchorSlot: 2, Span: 2}, // overlaps the first "a" range
	}

	rows := Expand(canonical)

	seen := make(map[string]map[int]bool)
	for _, row := range rows {
		if seen[row.Identity] == nil {
			seen[row.Identity] = make(map[int]bool)
		}
		assert.False(t, seen[row.Identity][row.Slot], "duplicate pair %s@%d", row.Identity, row.Slot)
		seen[row.Identity][row.Slot] = true
	}

	// "a" covers 1,2,3 (slots 2,3 reachable twice, emitted once), "b" covers 2,3.
	assert.Len(t, rows, 5)
}

// TestExpand_CoversEverySpanSlot tests that the union of rows matches each
// entry's [anchor, anchor+span) exactly.
func TestExpand_CoversEverySpanSlot(t *testing.T) {
	canonical := []CanonicalSlotEntry{
		{Identity: "a", AnchorSlot: 1, Span: 1},
		{Identity: "b", AnchorSlot: 3, Span: 4},
		{Identity: "c", AnchorSlot: 9, Span: 2},
	}

	rows := Expand(canonical)

	got := make(map[string][]int)
	for _, row := range rows {
		got[row.Identity] = append(got[row.Identity], row.Slot)
	}

	assert.Equal(t, []int{1}, got["a"])
	assert.Equal(t, []int{3, 4, 5, 6}, got["b"])
	assert.Equal(t, []int{9, 10}, got["c"])
}
