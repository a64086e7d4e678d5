package slots

import (
	"strings"

	"quote-manager/core/extract"
)

// Identity derives the key identifying "this specific card occupying this
// configuration" from a raw entry. The persisted-item identifier wins when
// present; otherwise a composite of part number and card name is used.
// Two entries with the same identity and overlapping span ranges describe
// the same physical card.
func Identity(entry RawSlotEntry) string {
	if id := extract.String(entry, ItemIDKeys); id != "" {
		return "item:" + id
	}

	part := strings.ToLower(extract.String(entry, PartNumberKeys))
	name := strings.ToLower(extract.String(entry, CardNameKeys))
	if part == "" && name == "" {
		return ""
	}
	return part + "|" + name
}
