// Command seed prepares a fresh deployment: it creates the indexes, fills
// the taxonomy catalog, and bootstraps the administrator account (role
// changes afterwards go through PATCH /api/users/:id). Safe to re-run; every
// write is find-or-create.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/service"
	"github.com/LeaEliezrov/ai-learning-platform/internal/infrastructure/config"
	mongodb "github.com/LeaEliezrov/ai-learning-platform/internal/infrastructure/db/mongo"
	"github.com/LeaEliezrov/ai-learning-platform/pkg/logger"
)

// defaultCatalog is the starter taxonomy a new deployment ships with.
// Administrators extend it by seeding again with more categories.
var defaultCatalog = []ports.CategorySeed{
	{Name: "Science", Subcategories: []string{"Physics", "Chemistry", "Biology", "Astronomy"}},
	{Name: "Technology", Subcategories: []string{"Programming", "Artificial Intelligence", "Networking", "Cybersecurity"}},
	{Name: "Mathematics", Subcategories: []string{"Algebra", "Geometry", "Calculus", "Statistics"}},
	{Name: "History", Subcategories: []string{"Ancient History", "Modern History", "World Wars"}},
	{Name: "Languages", Subcategories: []string{"English", "Hebrew", "Spanish"}},
	{Name: "Arts", Subcategories: []string{"Music", "Painting", "Literature"}},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	taxonomyRepo := mongodb.NewTaxonomyRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := taxonomyRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("taxonomy index creation failed")
	}
	if err := mongodb.NewPromptRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("prompt index creation failed")
	}

	seeder := service.NewSeedService(userRepo, taxonomyRepo, log)

	if err := seeder.SeedTaxonomy(ctx, defaultCatalog); err != nil {
		log.Fatal().Err(err).Msg("taxonomy seed failed")
	}

	admin, err := seeder.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Phone)
	if err != nil {
		log.Fatal().Err(err).Msg("administrator bootstrap failed")
	}

	log.Info().
		Int64("admin_id", admin.ID).
		Str("admin_name", admin.Name).
		Msg("seed complete")
}
