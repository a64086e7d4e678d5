package productinfo

import (
	"regexp"
	"strings"

	"quote-manager/core/extract"
	"quote-manager/core/utils"
)

// Candidate-key tables for the product hierarchy shapes.

// LevelKeys locate the item's hierarchy level (1-4).
var LevelKeys = []string{
	"hierarchy_level", "hierarchyLevel", "product_level", "productLevel",
	"level", "tier",
}

// URLKeys locate a published product-information URL.
var URLKeys = []string{
	"product_info_url", "productInfoUrl", "product_information_url",
	"info_url", "infoUrl", "product_url", "productUrl",
	"datasheet_url", "datasheetUrl", "external_url", "externalUrl",
}

// ParentIDKeys locate a level-3 item's explicit level-2 parent reference.
var ParentIDKeys = []string{
	"parent_id", "parentId", "parent_product_id", "parentProductId",
	"level2_id", "level2Id",
}

// ProductIDKeys locate the item's own product identifier.
var ProductIDKeys = []string{
	"product_id", "productId", "catalog_id", "catalogId", "sku",
}

// urlShape accepts http(s) URLs with a plausible host. Anything else found
// under a URL key (fragments, placeholders, file paths) is rejected.
var urlShape = regexp.MustCompile(`^https?://[^\s/]+\.[^\s/]+(?:/\S*)?$`)

// levelWords maps the textual level encodings onto 1-4.
var levelWords = map[string]int{
	"level1": 1, "level2": 2, "level3": 3, "level4": 4,
	"l1": 1, "l2": 2, "l3": 3, "l4": 4,
}

// Item is one BOM line presented for link resolution.
type Item struct {
	// ID is the BOM line identifier; resolution results key on it.
	ID string
	// ProductID is the item's product id when the record store carries it
	// in a typed column; the payload is consulted otherwise.
	ProductID string
	// Payload is the raw decoded record, including the configuration graph.
	Payload map[string]any
}

// DetectLevel determines an item's product hierarchy level from any of the
// level-encoding fields: numeric 1-4 or words "level1".."level4"/"l1".."l4".
func DetectLevel(payload map[string]any) (int, bool) {
	val, ok := extract.Field(payload, LevelKeys)
	if !ok {
		return 0, false
	}
	if s := strings.ToLower(strings.TrimSpace(utils.ToString(val))); s != "" {
		if lvl, word := levelWords[s]; word {
			return lvl, true
		}
	}
	if n := utils.ToInt(val); n >= 1 && n <= 4 {
		return n, true
	}
	return 0, false
}

// SearchURL walks the item's configuration graph for a URL-shaped value
// under the known key spellings. Bounded-depth and cycle-safe; only http(s)
// values are accepted.
func SearchURL(payload any) string {
	var url string
	extract.Search(payload, func(obj map[string]any) bool {
		for _, key := range URLKeys {
			if val, ok := extract.Field(obj, []string{key}); ok {
				if candidate := strings.TrimSpace(utils.ToString(val)); urlShape.MatchString(candidate) {
					url = candidate
					return true
				}
			}
		}
		return false
	})
	return url
}

// Plan is the resolution state between the pure collect pass and the
// batched remote lookups. Resolution ownership follows the hierarchy:
// level-2 nodes are the canonical link holders, level-3 items inherit their
// parent's link, levels 1 and 4 never display one.
type Plan struct {
	// links holds item id -> URL for locally resolved items.
	links map[string]string

	// level2Pending maps item id -> product id for level-2 items whose
	// link needs the remote URL lookup.
	level2Pending map[string]string

	// level3Parent maps item id -> parent product id, filled from explicit
	// parent fields at collect time and from the remote parent lookup.
	level3Parent map[string]string

	// level3Orphan maps item id -> own product id for level-3 items with
	// no explicit parent; these need the remote parent lookup.
	level3Orphan map[string]string

	// byProduct indexes collected items by product id so a level-3 item
	// can search its in-quote parent locally before going remote.
	byProduct map[string]Item
}

// Collect performs the pure first pass over all BOM lines of an export:
// ineligible levels are settled immediately, eligible items are resolved
// locally where possible, and the ids still needing the two remote lookups
// are gathered for batching.
func Collect(items []Item) *Plan {
	p := &Plan{
		links:         make(map[string]string),
		level2Pending: make(map[string]string),
		level3Parent:  make(map[string]string),
		level3Orphan:  make(map[string]string),
		byProduct:     make(map[string]Item),
	}

	for _, item := range items {
		if pid := productID(item); pid != "" {
			p.byProduct[pid] = item
		}
	}

	for _, item := range items {
		level, ok := DetectLevel(item.Payload)
		if !ok {
			continue
		}
		switch level {
		case 2:
			if url := SearchURL(item.Payload); url != "" {
				p.links[item.ID] = url
				continue
			}
			if pid := productID(item); pid != "" {
				p.level2Pending[item.ID] = pid
			}
		case 3:
			if parent := extract.String(item.Payload, ParentIDKeys); parent != "" {
				p.level3Parent[item.ID] = parent
				// The parent may be another line of the same quote; its
				// graph is searched locally before any remote call.
				if parentItem, local := p.byProduct[parent]; local {
					if url := SearchURL(parentItem.Payload); url != "" {
						p.links[item.ID] = url
						delete(p.level3Parent, item.ID)
					}
				}
				continue
			}
			if pid := productID(item); pid != "" {
				p.level3Orphan[item.ID] = pid
			}
		default:
			// Levels 1 and 4 never display a link, whatever the data says.
		}
	}

	return p
}

// ParentIDs returns the distinct level-3 product ids needing the remote
// parent-relationship lookup. Empty means no round-trip is needed.
func (p *Plan) ParentIDs() []string {
	return distinct(p.level3Orphan)
}

// ApplyParents folds the batched parent-lookup results into the plan.
// Orphans whose parent resolved move into the parent-known set; the rest
// stay unresolved and will render without a link.
func (p *Plan) ApplyParents(parents map[string]string) {
	for itemID, pid := range p.level3Orphan {
		parent, ok := parents[pid]
		if !ok || parent == "" {
			continue
		}
		if parentItem, local := p.byProduct[parent]; local {
			if url := SearchURL(parentItem.Payload); url != "" {
				p.links[itemID] = url
				delete(p.level3Orphan, itemID)
				continue
			}
		}
		p.level3Parent[itemID] = parent
		delete(p.level3Orphan, itemID)
	}
}

// LinkIDs returns the distinct product ids needing the remote URL lookup:
// unresolved level-2 items plus the level-2 parents of level-3 items.
func (p *Plan) LinkIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, pid := range p.level2Pending {
		if _, dup := seen[pid]; !dup {
			seen[pid] = struct{}{}
			ids = append(ids, pid)
		}
	}
	for _, pid := range p.level3Parent {
		if _, dup := seen[pid]; !dup {
			seen[pid] = struct{}{}
			ids = append(ids, pid)
		}
	}
	return ids
}

// ApplyLinks folds the batched URL-lookup results into the plan and returns
// the final item id -> URL map. Items absent from the map resolve to no
// link; the export proceeds regardless.
func (p *Plan) ApplyLinks(links map[string]string) map[string]string {
	result := make(map[string]string, len(p.links))
	for itemID, url := range p.links {
		result[itemID] = url
	}
	for itemID, pid := range p.level2Pending {
		if url, ok := links[pid]; ok && urlShape.MatchString(url) {
			result[itemID] = url
		}
	}
	for itemID, parent := range p.level3Parent {
		if url, ok := links[parent]; ok && urlShape.MatchString(url) {
			result[itemID] = url
		}
	}
	return result
}

// Unresolved returns how many collected items still lack a link after the
// given final map, for the export summary.
func (p *Plan) Unresolved(final map[string]string) int {
	n := 0
	for itemID := range p.level2Pending {
		if _, ok := final[itemID]; !ok {
			n++
		}
	}
	for itemID := range p.level3Parent {
		if _, ok := final[itemID]; !ok {
			n++
		}
	}
	n += len(p.level3Orphan)
	return n
}

func productID(item Item) string {
	if item.ProductID != "" {
		return item.ProductID
	}
	return extract.String(item.Payload, ProductIDKeys)
}

func distinct(byItem map[string]string) []string {
	seen := make(map[string]struct{}, len(byItem))
	var ids []string
	for _, id := range byItem {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
