// Package level4 resolves per-slot sub-configurations against the remote
// option catalog.
//
// A slot's nested blob may embed a selection payload (configuration id plus
// ordered per-input values) under any of several historical key spellings
// and entry encodings. Resolution is a two-phase pipeline: CollectIDs walks
// every blob of an export and gathers the distinct configuration ids, the
// caller fetches them in one batched catalog lookup, and Resolve renders
// each blob against the fetched map. Both phases are pure, so the resolver
// tests run against a stubbed definition map.
//
// Failure degrades, never aborts: a catalog miss falls back to heuristic
// extraction from the blob, an unmatched value renders verbatim with an
// unresolved marker, and a blob with no recognizable payload renders as raw
// diagnostic text.
package level4
