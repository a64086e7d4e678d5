// Package catalog provides the client for the remote option catalog service.
//
// The catalog is the authority for three lookups the export pipeline needs:
// level-4 configuration definitions (field label, template type, option
// list), published product-information URLs, and level-3 to level-2 parent
// relationships. All three are batched: the caller collects every id it
// will need across an export and resolves them in a single round-trip per
// lookup kind, so an export never fans out per-id requests.
//
// The HTTP client uses the same hardened transport settings as the storage
// client. NewClient wraps it in a per-id TTL cache with singleflight
// stampede protection when caching is enabled.
package catalog
