package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	mongoMigration "resbook/internal/migrations/mongo"
	"resbook/internal/resources/repository"
	"resbook/pkg/config"
	"resbook/pkg/model"
)

const JobName = "mongo-migration"

// EnvSeedResources is a comma-separated list of id:name pairs seeded as
// active resources after the schema migration, e.g. "room-1:Main Room".
const EnvSeedResources = "RESBOOK_SEED_RESOURCES"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown(cfg.Log)

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seedResources(ctx, cfg)
	fmt.Println("Migration completed successfully.")
}

func seedResources(ctx context.Context, cfg *config.Config) {
	raw := os.Getenv(EnvSeedResources)
	if raw == "" {
		return
	}

	repo := repository.NewMongoResourceRepository(cfg)
	for _, entry := range strings.Split(raw, ",") {
		id, name, found := strings.Cut(strings.TrimSpace(entry), ":")
		if !found || id == "" || name == "" {
			log.Fatalf("Invalid seed entry %q, expected id:name", entry)
		}

		resource := &model.Resource{ID: id, Name: name, IsActive: true}
		if err := repo.Upsert(ctx, resource); err != nil {
			log.Fatalf("Failed to seed resource %s: %v", id, err)
		}
		cfg.Log.Info("Seeded resource", "resource_id", id, "name", name)
	}
}
