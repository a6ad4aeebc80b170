package main

import (
	"context"
	"log"

	"memory-map-be/internal/bootstrap"
	"memory-map-be/internal/config"
	"memory-map-be/internal/server"
	"memory-map-be/internal/tracer"
	"memory-map-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("DB_CONNECTION_STRING is required")
	}
	if cfg.Keys.Mapbox == "" {
		log.Fatal("MAPBOX_ACCESS_TOKEN is required")
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Thumbnail Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Live Feed Bridge...")
		if err := container.LiveService.Consume(context.Background()); err != nil {
			log.Printf("Background Live Feed Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
