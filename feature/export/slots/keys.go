package slots

// Candidate-key tables for the historical slot entry shapes. Ordered by
// precedence: the editor's current spelling first, then each legacy
// generation. Treat these as versioned constants; removing a spelling
// breaks exports of quotes saved by that generation.

// SlotNumberKeys locate the entry's own slot position.
var SlotNumberKeys = []string{
	"slot", "slot_number", "slotNumber", "slot_no", "slotIndex", "position",
}

// CardNameKeys locate the occupying card's display name.
var CardNameKeys = []string{
	"card_name", "cardName", "display_name", "displayName", "name", "title",
}

// PartNumberKeys locate the card's part number.
var PartNumberKeys = []string{
	"part_number", "partNumber", "part_no", "partNo", "model_number", "model", "pn",
}

// ItemIDKeys locate the persisted-item identifier assigned when the card was
// placed in the editor. When present it is the strongest identity signal.
var ItemIDKeys = []string{
	"item_id", "itemId", "persisted_item_id", "persistedItemId",
	"entry_id", "entryId", "uid", "uuid",
}

// SpanKeys locate the span width (number of contiguous slots occupied).
var SpanKeys = []string{
	"span", "slot_span", "slotSpan", "span_width", "spanWidth",
	"slots_occupied", "slotsOccupied", "width",
}

// AnchorKeys locate the authoritative anchor slot of a spanning card.
// The shared-from spellings double as a replica signal; see ResolveSpan.
var AnchorKeys = []string{
	"anchor_slot", "anchorSlot", "primary_slot", "primarySlot",
	"shared_from_slot", "sharedFromSlot", "shared_from", "sharedFrom",
}

// SharedFromKeys are the subset of anchor spellings that specifically mean
// "this slot is a continuation of the card anchored elsewhere".
var SharedFromKeys = []string{
	"shared_from_slot", "sharedFromSlot", "shared_from", "sharedFrom",
}

// ReplicaFlagKeys locate the explicit secondary/continuation markers.
var ReplicaFlagKeys = []string{
	"is_secondary", "isSecondary", "secondary",
	"is_replica", "isReplica", "replica",
	"is_continuation", "isContinuation", "continuation",
}

// SubConfigKeys locate the nested per-slot sub-configuration blob.
var SubConfigKeys = []string{
	"sub_configuration", "subConfiguration", "sub_config", "subConfig",
	"level4_config", "level4Config", "configuration", "config",
}

// EntryListKeys are the top-level field names under which chassis items
// carry their raw slot entry lists.
var EntryListKeys = []string{
	"slot_assignments", "slotAssignments", "slot_entries", "slotEntries",
	"rack_slots", "rackSlots", "slots",
}
