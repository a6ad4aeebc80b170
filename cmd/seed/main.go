package main

import (
	"context"
	"log"
	"os"

	"memory-map-be/pkg/gateway"
	"memory-map-be/pkg/mapview"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Seeds a running instance with a handful of demo memories through the
// public API, exercising the same path the map's submit form uses.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	baseURL := os.Getenv("SEED_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	client := gateway.NewClient(baseURL)
	ctx := context.Background()

	memories := []mapview.NewMemory{
		{Message: "Remember the sunrise we watched here", Receiver: "alice", Longitude: 2.3522, Latitude: 48.8566},
		{Message: "Best ramen of the whole trip", Receiver: "bob", Longitude: 139.6917, Latitude: 35.6895},
		{Message: "The bridge was closed but the view was worth it", Receiver: "alice", Longitude: -122.4783, Latitude: 37.8199},
		{Message: "Happy birthday from the other side of the world", Receiver: "carol", Longitude: 151.2093, Latitude: -33.8688},
		{Message: "This is where we got lost for three hours", Receiver: "bob", Longitude: 12.4964, Latitude: 41.9028},
	}

	color.Cyan("Seeding %d memories against %s", len(memories), baseURL)

	created := 0
	for _, m := range memories {
		feature, err := client.Create(ctx, m)
		if err != nil {
			color.Red("  failed %q -> %s: %v", m.Message, m.Receiver, err)
			continue
		}
		color.Green("  created %s for %s at (%.4f, %.4f)", feature.ID, feature.Receiver, feature.Longitude, feature.Latitude)
		created++
	}

	if created == len(memories) {
		color.Cyan("Done, all %d memories created", created)
	} else {
		color.Yellow("Done with errors, %d/%d memories created", created, len(memories))
	}
}
