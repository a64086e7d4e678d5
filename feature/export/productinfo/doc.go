// Package productinfo resolves the published product-information URL for
// eligible BOM lines.
//
// The four-tier product hierarchy attaches the link at level 2; level-3
// items inherit their parent's link, levels 1 and 4 never display one.
// Resolution is collect/fetch/apply: Collect settles everything resolvable
// from the local configuration graph, then the caller issues at most two
// batched catalog lookups for the whole export (level-3 parents, then
// level-2 URLs) and folds the results back in with ApplyParents and
// ApplyLinks. The round-trip count is independent of BOM size.
package productinfo
