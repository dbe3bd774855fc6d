// seed_catalog.go is a standalone script to load the built-in tool catalog into
// the configured database.
//
// Usage:
//
//	go run scripts/seed_catalog.go -config config.yaml
package main

import (
	"context"
	"flag"
	"log"

	"github.com/MikeSquared-Agency/Readiness/internal/catalog"
	"github.com/MikeSquared-Agency/Readiness/internal/config"
	"github.com/MikeSquared-Agency/Readiness/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	dryRun := flag.Bool("dry-run", false, "print tools without inserting")
	flag.Parse()

	tools := catalog.DefaultTools()
	if *dryRun {
		for _, t := range tools {
			log.Printf("[DRY RUN] category=%d priority=%d %s", t.Category, t.Priority, t.ToolCategory)
		}
		log.Printf("%d tools", len(tools))
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ctx := context.Background()

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pg.Close()
		if err := catalog.NewPostgresCatalog(pg.Pool()).Seed(ctx, tools); err != nil {
			log.Fatalf("seed: %v", err)
		}
	default:
		db, err := store.OpenSQLite(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		defer db.Close()
		c, err := catalog.NewSQLiteCatalog(ctx, db)
		if err != nil {
			log.Fatalf("schema: %v", err)
		}
		if err := c.Seed(ctx, tools); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}
	log.Printf("seeded %d tools into %s", len(tools), cfg.Database.Driver)
}
