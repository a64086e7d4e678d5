// Package extract provides tolerant field extraction over the loosely typed
// payloads that quote records accumulated across schema generations.
//
// Quote configurations were persisted by several editor versions, each with
// its own key spellings (snake_case, camelCase, abbreviated forms) and its
// own nesting. Rather than scattering conditional chains through the export
// pipeline, every lookup goes through an ordered candidate-key table:
//
//	slot, ok := extract.Int(entry, slots.SlotNumberKeys)
//
// Extraction never panics on malformed input; a missing or empty field is
// reported as absent. String→number and string→bool coercion follows a
// fixed token table shared with core/utils.
//
// The package also provides Search, a bounded-depth, cycle-safe walk over
// decoded JSON graphs, used to locate embedded sub-configuration payloads
// and product-info URLs wherever a historical shape buried them.
package extract
