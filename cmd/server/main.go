package main

import (
	"log"
	"net/http"

	"fleet_registry/internal/config"
	"fleet_registry/internal/logger"
	"fleet_registry/internal/registration"
	"fleet_registry/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	cfg := config.Load()

	// Connect to the database and migrate the schema
	config.InitDB(cfg)

	// A primary admin must exist at all times; seed one on a fresh DB
	if err := config.EnsureDefaultAdmin(config.DB, cfg); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	// Per-session registration drafts, swept in the background
	store := registration.NewStore(cfg.Registration.DraftTTL)
	store.StartJanitor(cfg.Registration.SweepInterval)
	defer store.Close()

	r := routes.SetupRouter(store)

	log.Println("🚀 Server running at :" + cfg.Server.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Server.Port, r))
}
