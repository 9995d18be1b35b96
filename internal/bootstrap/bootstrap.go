// Package bootstrap wires repositories, storage and services from configuration
// for both binaries.
package bootstrap

import (
	"alcyxob/training-coach/internal/config"
	"alcyxob/training-coach/internal/repository"
	"alcyxob/training-coach/internal/repository/memory"
	"alcyxob/training-coach/internal/repository/mongo"
	"alcyxob/training-coach/internal/service"
	"alcyxob/training-coach/internal/storage"
	"context"
	"fmt"
	"log"
	"time"
)

// Repositories is the storage side of the application.
type Repositories struct {
	Users       repository.UserRepository
	Workouts    repository.WorkoutRepository
	Completions repository.CompletionRepository
	Challenges  repository.ChallengeRepository
	Posts       repository.PostRepository
}

// OpenRepositories returns repositories for cfg.Data.Source and a function
// releasing whatever they hold.
func OpenRepositories(ctx context.Context, cfg config.Config) (*Repositories, func(), error) {
	switch cfg.Data.Source {
	case config.SourceFixture:
		log.Println("INFO: Using in-memory fixture data.")
		data := memory.Fixtures(time.Now())
		return &Repositories{
			Users:       memory.NewUserRepository(data.Users),
			Workouts:    memory.NewWorkoutRepository(data.Workouts),
			Completions: memory.NewCompletionRepository(),
			Challenges:  memory.NewChallengeRepository(data.Challenges),
			Posts:       memory.NewPostRepository(data.Posts),
		}, func() {}, nil

	case config.SourceMongo:
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		closeFn := func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}
		appDB := dbClient.Database(cfg.Database.Name)
		log.Println("Database connection established.")

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		mongo.EnsureIndexes(indexCtx, appDB)
		cancel()

		if cfg.Data.Seed {
			data := memory.Fixtures(time.Now())
			if err := mongo.Seed(ctx, appDB, data.Users, data.Workouts, data.Challenges, data.Posts); err != nil {
				closeFn()
				return nil, nil, fmt.Errorf("seed fixtures: %w", err)
			}
			log.Println("INFO: Fixture data seeded.")
		}

		return &Repositories{
			Users:       mongo.NewMongoUserRepository(appDB),
			Workouts:    mongo.NewMongoWorkoutRepository(appDB),
			Completions: mongo.NewMongoCompletionRepository(appDB),
			Challenges:  mongo.NewMongoChallengeRepository(appDB),
			Posts:       mongo.NewMongoPostRepository(appDB),
		}, closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
}

// OpenFileStorage returns nil when no bucket is configured; media routes then
// answer that storage is disabled.
func OpenFileStorage(ctx context.Context, cfg config.S3Config) (storage.FileStorage, error) {
	if !cfg.Enabled() {
		log.Println("INFO: S3 bucket not configured, exercise media disabled.")
		return nil, nil
	}
	return storage.NewS3Storage(ctx, cfg)
}

// NewServices builds every use case over repos.
func NewServices(repos *Repositories, fileStorage storage.FileStorage, jwtSecret string, jwtExpiration time.Duration) service.Services {
	catalog := service.NewCatalogService(repos.Workouts, repos.Users, fileStorage)
	return service.Services{
		Auth:      service.NewAuthService(repos.Users, jwtSecret, jwtExpiration),
		Catalog:   catalog,
		Training:  service.NewTrainingService(repos.Workouts, repos.Completions),
		Progress:  service.NewProgressService(repos.Completions),
		Challenge: service.NewChallengeService(repos.Challenges),
		Feed:      service.NewFeedService(repos.Posts, repos.Users, repos.Workouts, repos.Completions, catalog),
	}
}
