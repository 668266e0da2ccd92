package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"topupbot/internal/config"
	"topupbot/internal/model"
	"topupbot/internal/store"
)

// Seeds the local sqlite backend with sample packages per category, so the
// bot can be exercised without touching production data.
func main() {
	dbPath := flag.String("db", "", "sqlite store path (defaults to SQLITE_PATH)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadEnv()
	if *dbPath == "" {
		*dbPath = cfg.SQLitePath
	}

	st, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}
	defer st.Close()

	samples := []model.Package{
		{Name: "1GB 7 Days", Price: 48},
		{Name: "2GB 30 Days", Price: 98},
		{Name: "100 Minutes", Price: 65},
	}

	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339)
	registry := model.NewRegistry(cfg.Categories)
	for _, category := range registry.Names() {
		for _, pkg := range samples {
			pkg.Status = model.StatusActive
			pkg.CreatedAt = now
			key, err := st.Push(ctx, store.Join(model.PathPackages, category), pkg)
			if err != nil {
				log.Fatalf("seed %s failed: %v", category, err)
			}
			log.Printf("seeded %s/%s: %s", category, key, pkg.Name)
		}
	}
}
