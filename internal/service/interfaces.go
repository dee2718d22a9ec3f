package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"jokes-fetcher/internal/models"
)

type Aggregator interface {
	GetRandomJoke(ctx context.Context) (*models.JokeWithSource, error)
	GetJokeFromProvider(ctx context.Context, nameFragment string) (*models.JokeWithSource, error)
	GetJokeByCategory(ctx context.Context, category string) (*models.JokeWithSource, error)
	GetMultipleJokes(ctx context.Context, count int) []models.JokeWithSource
	Providers() []models.ProviderInfo
	AllCategories() []string
}

type Repository interface {
	UpsertBatch(ctx context.Context, entries []models.JokeWithSource) ([]models.SavedJoke, error)
	GetRandom(ctx context.Context) (*models.StoredJoke, error)
	Stats(ctx context.Context) (*models.JokeStats, error)
	CountByProvider(ctx context.Context) ([]models.ProviderStats, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Publisher interface {
	PublishSaved(ctx context.Context, saved []models.SavedJoke) error
}
