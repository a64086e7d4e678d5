package models

import (
	"quote-manager/feature/export/level4"
	"quote-manager/feature/export/slots"
)

// QuoteRecord is the in-memory quote loaded from the record store for one
// export. Nothing here is written back; the record is a snapshot.
type QuoteRecord struct {
	// ID is the quote's primary identifier.
	ID string `json:"id"`
	// Reference is the human-facing quote reference.
	Reference string `json:"reference"`
	// CustomerName is the customer the quote was prepared for.
	CustomerName string `json:"customer_name"`
	// Status is the workflow status at export time (informational only).
	Status string `json:"status"`
	// Payload is the quote-level raw payload, decoded as-is.
	Payload map[string]any `json:"-"`
	// Items are the BOM line items.
	Items []BOMItem `json:"items"`
}

// BOMItem is one bill-of-materials line of a quote.
type BOMItem struct {
	// ID is the line identifier.
	ID string `json:"id"`
	// ProductID is the catalog product id, when the store carries it.
	ProductID string `json:"product_id,omitempty"`
	// PartNumber is the line's part number.
	PartNumber string `json:"part_number,omitempty"`
	// Name is the line's display name.
	Name string `json:"name"`
	// Payload is the raw line payload including the configuration graph;
	// slot entries, hierarchy level and sub-configurations live in here
	// under generation-dependent keys.
	Payload map[string]any `json:"-"`
}

// DraftSnapshot is one persisted draft of a chassis configuration, used as
// a fallback source for slot entries the primary record no longer carries.
type DraftSnapshot struct {
	// Key identifies which product the draft belongs to: a product id, or
	// a part number for older drafts.
	Key string `json:"key"`
	// Entries are the raw slot entries of the draft.
	Entries []slots.RawSlotEntry `json:"entries"`
}

// ChassisSection is the resolved rendering of one chassis/rack item.
type ChassisSection struct {
	// ItemID is the BOM line the chassis came from.
	ItemID string `json:"item_id"`
	// PartNumber and Name identify the chassis itself.
	PartNumber string `json:"part_number,omitempty"`
	Name       string `json:"name"`
	// Rows are the occupied display rows, one per physical slot.
	Rows []slots.DisplaySlotRow `json:"rows"`
	// SubConfigs are the resolved level-4 sections, one per canonical
	// entry that carried a sub-configuration blob, keyed by anchor slot.
	SubConfigs map[int]level4.Section `json:"sub_configs,omitempty"`
}

// Summary aggregates per-export counters for logging and the API response.
type Summary struct {
	// RawEntries is the number of raw slot entries consumed across all
	// chassis items, drafts included.
	RawEntries int `json:"raw_entries"`
	// CanonicalEntries is the number of physical card occurrences kept.
	CanonicalEntries int `json:"canonical_entries"`
	// DuplicatesDropped and ReplicasDropped count suppressed raw entries.
	DuplicatesDropped int `json:"duplicates_dropped"`
	ReplicasDropped   int `json:"replicas_dropped"`
	// MalformedEntries counts entries skipped as unusable.
	MalformedEntries int `json:"malformed_entries"`
	// CatalogMisses counts level-4 ids the remote catalog didn't know.
	CatalogMisses int `json:"catalog_misses"`
	// UnresolvedOptions counts level-4 values rendered verbatim.
	UnresolvedOptions int `json:"unresolved_options"`
	// UnresolvedLinks counts eligible BOM lines left without an info URL.
	UnresolvedLinks int `json:"unresolved_links"`
}

// ExportData is the canonical output of one export run, handed to the
// document assembler and then discarded.
type ExportData struct {
	// ExportID is a fresh id for this run, for log correlation.
	ExportID string `json:"export_id"`
	// QuoteID and Reference identify the exported quote.
	QuoteID   string `json:"quote_id"`
	Reference string `json:"reference,omitempty"`
	// CustomerName is carried through for the document header.
	CustomerName string `json:"customer_name,omitempty"`
	// GeneratedAt is the RFC3339 generation timestamp.
	GeneratedAt string `json:"generated_at"`
	// Chassis are the resolved chassis sections in BOM order.
	Chassis []ChassisSection `json:"chassis"`
	// Links maps BOM line id to its resolved product-information URL.
	// Lines without a link are absent.
	Links map[string]string `json:"links,omitempty"`
	// Summary aggregates the run's counters.
	Summary Summary `json:"summary"`
}
