// Command main runs the demo data seeder.
package main

import (
	"context"
	"flag"
	"log"

	"simplepost/internal/bootstrap"
	"simplepost/internal/cache"
	"simplepost/internal/config"
	"simplepost/internal/database"
	"simplepost/internal/middleware"
	"simplepost/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 50, "Number of posts to create")
	shouldClean := flag.Bool("clean", false, "Delete existing posts before seeding")
	fakerSeed := flag.Int64("seed", 0, "Fake data seed (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.ConfigureLogger(cfg.LogFormat, cfg.LogLevel)

	if cfg.IsProduction() {
		log.Fatal("Refusing to seed in PROD mode")
	}

	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() { _ = database.Close(db) }()
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	s := seed.NewSeeder(db, cache.NewPostCache(redisClient, cfg.PostCacheTTL()), *fakerSeed)
	ctx := context.Background()

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.SeedPosts(ctx, *numPosts); err != nil {
		log.Fatalf("Post seeding failed: %v", err)
	}

	log.Printf("Seeded %d posts", *numPosts)
}
