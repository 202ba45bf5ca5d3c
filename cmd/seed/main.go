// Command main runs the database seeder for EventDesk.
package main

import (
	"flag"
	"log"
	"strings"

	"eventdesk/internal/config"
	"eventdesk/internal/database"
	"eventdesk/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of profiles to create")
	numRequests := flag.Int("requests", 40, "Number of requests to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d profiles, %d requests, clean=%v\n", *numUsers, *numRequests, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if strings.EqualFold(cfg.Env, "production") || strings.EqualFold(cfg.Env, "prod") {
		log.Fatal("Refusing to seed a production database")
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(database.DB, seed.Options{
		NumUsers:    *numUsers,
		NumRequests: *numRequests,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
