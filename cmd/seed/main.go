// Command main runs the database seeder for Flick.
package main

import (
	"flag"
	"log"

	"flick/internal/config"
	"flick/internal/database"
	"flick/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 8, "Number of users to create")
	numMovies := flag.Int("movies", 60, "Number of cached movies to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d movies, clean=%v\n", *numUsers, *numMovies, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{NumUsers: *numUsers, NumMovies: *numMovies}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All seeded accounts use PIN %s", seed.DefaultPIN)
}
