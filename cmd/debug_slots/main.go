package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"quote-manager/core/config"
	"quote-manager/core/database"
	"quote-manager/core/storage"
	"quote-manager/feature/export"
	"quote-manager/feature/export/slots"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_slots <quote-id-or-reference>")
	}
	identifier := os.Args[1]

	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	// Connect to DB
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	// Create storage client
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	logg := zap.NewNop()
	store := export.NewRecordStore(db, client, cfg.Storage.Bucket, cfg.Storage.DraftPrefix, cfg.Database.Schema, logg)
	ctx := context.Background()

	record, err := store.LoadQuote(ctx, identifier)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Quote %s (%s): %d items\n", record.ID, record.Reference, len(record.Items))

	drafts, err := store.LoadDrafts(ctx, record.ID)
	if err != nil {
		fmt.Printf("draft load failed: %v\n", err)
	}
	fmt.Printf("Drafts: %d\n", len(drafts))

	// Per-item slot diagnostics, no catalog calls needed.
	for _, item := range record.Items {
		entries := export.GatherRawEntries(item.Payload)
		fmt.Printf("\n=== Item %s (%s) ===\n", item.ID, item.PartNumber)
		fmt.Printf("Raw entries: %d\n", len(entries))

		canonical, stats := slots.DedupeWithStats(entries, slots.SourcePrimary)
		fmt.Printf("Canonical: %d (duplicates=%d replicas=%d malformed=%d)\n",
			len(canonical), stats.Duplicates, stats.Replicas, stats.Malformed)

		for _, entry := range canonical {
			marker := ""
			if entry.Span > 1 {
				marker = fmt.Sprintf(" [span %d-%d]", entry.AnchorSlot, entry.AnchorSlot+entry.Span-1)
			}
			fmt.Printf("  slot %d: %s (%s)%s\n", entry.AnchorSlot, entry.CardName, entry.PartNumber, marker)
		}

		for _, row := range slots.Expand(canonical) {
			fmt.Printf("    row slot=%d card=%s\n", row.Slot, row.CardName)
		}
	}
}
