// Package export implements the quote export pipeline: loading a quote and
// its draft snapshots, reconciling the chassis slot configuration into a
// canonical view, resolving level-4 sub-configurations and product-info
// links against the remote catalog, and assembling the result for the
// document typesetter.
//
// # Pipeline
//
// An export runs in three phases:
//
//  1. Pure reconciliation: raw slot entries are gathered from every
//     historical payload shape plus draft fallbacks and deduplicated per
//     chassis (see feature/export/slots). All catalog ids the export will
//     need are collected in the same pass.
//  2. Batched lookups: one configurations lookup and at most two product
//     lookups per export, independent of BOM size. Lookup failures degrade
//     to embedded fallbacks; nothing here aborts an export.
//  3. Pure apply: display rows, level-4 sections and links are rendered
//     against the fetched maps and handed to the Assembler.
//
// The engine is read-only over its inputs and keeps no state between
// exports.
package export
