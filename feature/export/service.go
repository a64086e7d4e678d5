package export

import (
	"context"
	"sort"
	"time"

	"quote-manager/core/catalog"
	"quote-manager/core/extract"
	"quote-manager/core/utils"
	"quote-manager/feature/export/level4"
	"quote-manager/feature/export/models"
	"quote-manager/feature/export/productinfo"
	"quote-manager/feature/export/slots"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service runs the reconciliation engine for one export request: canonical
// slot rows, resolved level-4 sections, and resolved product-info links,
// handed to the document assembler. It never writes back to any store.
type Service struct {
	store   Store
	catalog catalog.Client
	logger  *zap.Logger
}

// NewService creates a new export service.
func NewService(store Store, catalogClient catalog.Client, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalogClient,
		logger:  logger,
	}
}

// chassisWork holds the per-chassis intermediate state between the pure
// reconciliation pass and the apply pass.
type chassisWork struct {
	item      models.BOMItem
	canonical []slots.CanonicalSlotEntry
}

// Export produces the canonical export data for a quote identified by id or
// reference. Remote lookups are batched: one configurations lookup and at
// most two product lookups per export, regardless of BOM size. Every
// failure past loading the quote itself degrades instead of aborting.
func (s *Service) Export(ctx context.Context, identifier string) (*models.ExportData, error) {
	quote, err := s.store.LoadQuote(ctx, identifier)
	if err != nil {
		return nil, err
	}

	drafts, err := s.store.LoadDrafts(ctx, quote.ID)
	if err != nil {
		s.logger.Warn("Draft snapshots unavailable, exporting from primary sources only",
			zap.String("quote", quote.ID), zap.Error(err))
	}
	draftIndex := indexDrafts(drafts)

	summary := models.Summary{}

	// Phase 1: pure reconciliation per chassis item, and collection of
	// every id the remote catalog will be asked about.
	var work []chassisWork
	var subConfigBlobs []any
	for _, item := range quote.Items {
		primary := GatherRawEntries(item.Payload)
		draftEntries := draftIndex.lookup(item)
		if len(primary) == 0 && len(draftEntries) == 0 {
			continue
		}

		canonical, stats := slots.DedupeSources(primary, draftEntries)
		summary.RawEntries += stats.Seen
		summary.CanonicalEntries += stats.Accepted
		summary.DuplicatesDropped += stats.Duplicates
		summary.ReplicasDropped += stats.Replicas
		summary.MalformedEntries += stats.Malformed

		for _, c := range canonical {
			if c.SubConfig != nil {
				subConfigBlobs = append(subConfigBlobs, c.SubConfig)
			}
		}
		work = append(work, chassisWork{item: item, canonical: canonical})
	}

	configIDs := level4.CollectIDs(subConfigBlobs)
	plan := productinfo.Collect(linkItems(quote.Items))

	// Phase 2: batched remote lookups. The configurations and parent
	// lookups are independent and issued concurrently; the link lookup
	// needs the parents first.
	defs, parents := s.fetchIndependent(ctx, configIDs, plan.ParentIDs())
	plan.ApplyParents(parents)
	links := plan.ApplyLinks(s.fetchLinks(ctx, plan.LinkIDs()))
	summary.UnresolvedLinks = plan.Unresolved(links)
	summary.CatalogMisses = len(configIDs) - len(defs)

	// Phase 3: pure apply pass over the already-fetched maps.
	chassis := make([]models.ChassisSection, 0, len(work))
	for _, w := range work {
		section := models.ChassisSection{
			ItemID:     w.item.ID,
			PartNumber: w.item.PartNumber,
			Name:       w.item.Name,
			Rows:       slots.Expand(w.canonical),
		}
		for _, c := range w.canonical {
			if c.SubConfig == nil {
				continue
			}
			resolved := level4.Resolve(c.SubConfig, defs)
			summary.UnresolvedOptions += resolved.Unresolved()
			if section.SubConfigs == nil {
				section.SubConfigs = make(map[int]level4.Section)
			}
			section.SubConfigs[c.AnchorSlot] = resolved
		}
		chassis = append(chassis, section)
	}

	data := &models.ExportData{
		ExportID:     uuid.NewString(),
		QuoteID:      quote.ID,
		Reference:    quote.Reference,
		CustomerName: quote.CustomerName,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Chassis:      chassis,
		Links:        links,
		Summary:      summary,
	}

	s.logger.Info("Export assembled",
		zap.String("quote", quote.ID),
		zap.String("export_id", data.ExportID),
		zap.Int("chassis", len(chassis)),
		zap.Int("canonical_entries", summary.CanonicalEntries),
		zap.Int("replicas_dropped", summary.ReplicasDropped),
		zap.Int("unresolved_links", summary.UnresolvedLinks),
	)
	return data, nil
}

// fetchConfigurations resolves level-4 definitions, degrading to an empty
// map on lookup failure so the heuristic fallback takes over.
func (s *Service) fetchConfigurations(ctx context.Context, ids []string) map[string]catalog.Definition {
	if len(ids) == 0 {
		return map[string]catalog.Definition{}
	}
	defs, err := s.catalog.LookupConfigurations(ctx, ids)
	if err != nil {
		s.logger.Warn("Configuration catalog lookup failed, using embedded fallbacks",
			zap.Int("ids", len(ids)), zap.Error(err))
		return map[string]catalog.Definition{}
	}
	return defs
}

func (s *Service) fetchParents(ctx context.Context, ids []string) map[string]string {
	if len(ids) == 0 {
		return map[string]string{}
	}
	parents, err := s.catalog.LookupParents(ctx, ids)
	if err != nil {
		s.logger.Warn("Parent relationship lookup failed, affected lines render without links",
			zap.Int("ids", len(ids)), zap.Error(err))
		return map[string]string{}
	}
	return parents
}

func (s *Service) fetchLinks(ctx context.Context, ids []string) map[string]string {
	if len(ids) == 0 {
		return map[string]string{}
	}
	links, err := s.catalog.LookupProductLinks(ctx, ids)
	if err != nil {
		s.logger.Warn("Product link lookup failed, affected lines render without links",
			zap.Int("ids", len(ids)), zap.Error(err))
		return map[string]string{}
	}
	return links
}

// fetchIndependent runs the independent batched lookups concurrently.
// Only the configurations and parents lookups qualify; errors are handled
// inside each fetch, so the group never aborts an export.
func (s *Service) fetchIndependent(ctx context.Context, configIDs, parentIDs []string) (map[string]catalog.Definition, map[string]string) {
	var (
		defs    map[string]catalog.Definition
		parents map[string]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defs = s.fetchConfigurations(gctx, configIDs)
		return nil
	})
	g.Go(func() error {
		parents = s.fetchParents(gctx, parentIDs)
		return nil
	})
	_ = g.Wait()
	return defs, parents
}

// draftIndex maps draft keys (product id or part number) to entries.
type draftIndex map[string][]slots.RawSlotEntry

func indexDrafts(drafts []models.DraftSnapshot) draftIndex {
	idx := make(draftIndex, len(drafts))
	for _, d := range drafts {
		if d.Key == "" {
			continue
		}
		idx[d.Key] = append(idx[d.Key], d.Entries...)
	}
	return idx
}

func (idx draftIndex) lookup(item models.BOMItem) []slots.RawSlotEntry {
	if entries, ok := idx[item.ProductID]; ok && item.ProductID != "" {
		return entries
	}
	if entries, ok := idx[item.PartNumber]; ok && item.PartNumber != "" {
		return entries
	}
	return nil
}

// GatherRawEntries collects the raw slot entries of one BOM line payload.
// The list may sit at the top level or nested inside the configuration
// graph, as an array or as a per-slot assignment map keyed by slot number.
func GatherRawEntries(payload map[string]any) []slots.RawSlotEntry {
	if payload == nil {
		return nil
	}

	raw, ok := extract.Field(payload, slots.EntryListKeys)
	if !ok {
		host := extract.Search(payload, func(obj map[string]any) bool {
			_, found := extract.Field(obj, slots.EntryListKeys)
			return found
		})
		if host == nil {
			return nil
		}
		raw, _ = extract.Field(host, slots.EntryListKeys)
	}

	switch v := raw.(type) {
	case []any:
		entries := make([]slots.RawSlotEntry, 0, len(v))
		for _, elem := range v {
			if obj := extract.AsObject(elem); obj != nil {
				entries = append(entries, slots.RawSlotEntry(obj))
			}
		}
		return entries
	case map[string]any:
		// Per-slot assignment map: {"3": {...}, "4": {...}}. The map key
		// is the slot number unless the entry carries its own.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		entries := make([]slots.RawSlotEntry, 0, len(v))
		for _, k := range keys {
			obj := extract.AsObject(v[k])
			if obj == nil {
				continue
			}
			entry := make(slots.RawSlotEntry, len(obj)+1)
			for field, val := range obj {
				entry[field] = val
			}
			if _, hasSlot := extract.Int(entry, slots.SlotNumberKeys); !hasSlot {
				entry["slot"] = utils.ToInt(k)
			}
			entries = append(entries, entry)
		}
		return entries
	default:
		return nil
	}
}

// linkItems adapts BOM lines for the product-info resolver.
func linkItems(items []models.BOMItem) []productinfo.Item {
	out := make([]productinfo.Item, 0, len(items))
	for _, item := range items {
		out = append(out, productinfo.Item{
			ID:        item.ID,
			ProductID: item.ProductID,
			Payload:   item.Payload,
		})
	}
	return out
}
