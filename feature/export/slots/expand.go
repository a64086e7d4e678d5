package slots

import (
	"fmt"
	"sort"
)

// Expand turns canonical entries into one display row per physical slot
// occupied, sorted ascending by slot number. A card anchored at 3 with span
// 2 yields rows for slots 3 and 4, same identity. A (identity, slot) pair
// is never emitted twice even if reachable through more than one canonical
// entry. Unclaimed slots are the renderer's concern; only occupied rows are
// emitted here.
func Expand(canonical []CanonicalSlotEntry) []DisplaySlotRow {
	seen := make(map[string]struct{})
	rows := make([]DisplaySlotRow, 0, len(canonical))

	for _, c := range canonical {
		span := c.Span
		if span < 1 {
			span = 1
		}
		for slot := c.AnchorSlot; slot < c.AnchorSlot+span; slot++ {
			key := fmt.Sprintf("%s@%d", c.Identity, slot)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rows = append(rows, DisplaySlotRow{
				Slot:       slot,
				CardName:   c.CardName,
				PartNumber: c.PartNumber,
				Identity:   c.Identity,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Slot != rows[j].Slot {
			return rows[i].Slot < rows[j].Slot
		}
		return rows[i].Identity < rows[j].Identity
	})
	return rows
}
