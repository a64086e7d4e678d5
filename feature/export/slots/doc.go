// Package slots reconstructs the canonical slot occupancy of a chassis from
// redundant, inconsistently shaped sources.
//
// A quote's rack configuration may be described three times over: by the
// live editor state, by persisted draft snapshots, and by per-slot
// assignment maps written by older releases. Each source has its own key
// spellings and its own way of encoding multi-slot cards, and none of them
// agree. The pipeline here is:
//
//  1. ResolveSpan - per raw entry, determine span width, anchor slot, and
//     whether the entry is a redundant secondary copy of a span recorded
//     elsewhere (explicit flag, shared-from field, or positional inference,
//     in that precedence).
//  2. Dedupe - first-wins merge per (card identity, anchor slot). Primary
//     sources are processed before draft fallbacks, so drafts only fill
//     gaps. Suppressed replicas still contribute: they widen the accepted
//     span when the anchor entry never declared one.
//  3. Expand - one display row per physical slot occupied, defensively
//     de-duplicated, sorted by slot number.
//
// All three steps are pure over their inputs; running Dedupe on its own
// re-rawed output changes nothing.
package slots
