package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"loot-ledger/core/config"
	"loot-ledger/feature/items"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_resolve <itemID> [itemID...]")
		os.Exit(1)
	}

	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	l := zap.NewNop()

	// Load the lookup tables
	table, err := items.LoadTable(cfg.Ledger.LookupDir, nil, l)
	if err != nil {
		log.Fatal(err)
	}

	// Metadata client (optional, needs credentials)
	var meta items.MetadataService
	if cfg.Items.ClientID != "" {
		meta = items.NewClient(cfg.Items, l)
	} else {
		fmt.Println("NOTE: no metadata credentials, cache-only resolution")
	}

	resolver := items.NewResolver(table, meta, items.StaticRaidPolicy{}, l)
	ctx := context.Background()

	for _, id := range os.Args[1:] {
		res := resolver.Resolve(ctx, id)
		fmt.Printf("item=%s name=%q raid=%s trash=%v\n", id, res.Name, res.Raid, res.IsTrash())
	}
}
