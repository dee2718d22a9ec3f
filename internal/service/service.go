// Package service ties the provider aggregator to the joke store.
package service

import (
	"context"
	"fmt"
	"time"

	"jokes-fetcher/internal/models"
	"jokes-fetcher/pkg/logger"
)

const (
	DefaultRetrieveCount = 100
	MaxRetrieveCount     = 100
)

// ClampCount bounds a requested batch size to [0, MaxRetrieveCount].
func ClampCount(count int) int {
	return min(max(count, 0), MaxRetrieveCount)
}

type RetrieveResult struct {
	Jokes      []models.SavedJoke `json:"jokes"`
	SavedCount int                `json:"saved_count"`
}

type Stats struct {
	Totals     models.JokeStats       `json:"totals"`
	ByProvider []models.ProviderStats `json:"by_provider"`
}

type Option func(*JokeService)

// WithPublisher announces every saved batch. Publish failures are logged only.
func WithPublisher(p Publisher) Option {
	return func(s *JokeService) {
		s.publisher = p
	}
}

func WithDefaultCount(n int) Option {
	return func(s *JokeService) {
		s.defaultCount = ClampCount(n)
	}
}

type JokeService struct {
	aggregator   Aggregator
	repo         Repository
	health       HealthChecker
	publisher    Publisher
	defaultCount int
}

func NewJokeService(agg Aggregator, repo Repository, health HealthChecker, opts ...Option) *JokeService {
	s := &JokeService{
		aggregator:   agg,
		repo:         repo,
		health:       health,
		defaultCount: DefaultRetrieveCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JokeService) DefaultCount() int {
	return s.defaultCount
}

// Retrieve fetches up to count jokes from random providers and stores them.
// Provider failures only shrink the batch; a storage failure fails the call.
func (s *JokeService) Retrieve(ctx context.Context, count int) (*RetrieveResult, error) {
	count = ClampCount(count)
	start := time.Now()

	fetched := s.aggregator.GetMultipleJokes(ctx, count)

	saved, err := s.repo.UpsertBatch(ctx, fetched)
	if err != nil {
		return nil, fmt.Errorf("failed to save jokes: %w", err)
	}

	logger.Info("Jokes retrieved",
		logger.Int("requested", count),
		logger.Int("fetched", len(fetched)),
		logger.Int("saved", len(saved)),
		logger.Duration("took", time.Since(start)),
	)

	if s.publisher != nil && len(saved) > 0 {
		if err := s.publisher.PublishSaved(ctx, saved); err != nil {
			logger.Warn("Failed to publish saved jokes", logger.Err(err))
		}
	}

	if saved == nil {
		saved = []models.SavedJoke{}
	}
	return &RetrieveResult{Jokes: saved, SavedCount: len(saved)}, nil
}

func (s *JokeService) Random(ctx context.Context) (*models.StoredJoke, error) {
	return s.repo.GetRandom(ctx)
}

func (s *JokeService) Providers() []models.ProviderInfo {
	return s.aggregator.Providers()
}

func (s *JokeService) Categories() []string {
	return s.aggregator.AllCategories()
}

// Live fetches one joke straight from the providers without storing it.
// provider narrows the pool by name fragment and takes precedence over
// category; with neither set any provider may answer.
func (s *JokeService) Live(ctx context.Context, provider, category string) (*models.JokeWithSource, error) {
	switch {
	case provider != "":
		return s.JokeFromProvider(ctx, provider)
	case category != "":
		return s.JokeByCategory(ctx, category)
	default:
		return s.aggregator.GetRandomJoke(ctx)
	}
}

func (s *JokeService) JokeFromProvider(ctx context.Context, nameFragment string) (*models.JokeWithSource, error) {
	return s.aggregator.GetJokeFromProvider(ctx, nameFragment)
}

func (s *JokeService) JokeByCategory(ctx context.Context, category string) (*models.JokeWithSource, error) {
	return s.aggregator.GetJokeByCategory(ctx, category)
}

func (s *JokeService) Stats(ctx context.Context) (*Stats, error) {
	totals, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	byProvider, err := s.repo.CountByProvider(ctx)
	if err != nil {
		return nil, err
	}
	if byProvider == nil {
		byProvider = []models.ProviderStats{}
	}
	return &Stats{Totals: *totals, ByProvider: byProvider}, nil
}

func (s *JokeService) Ping(ctx context.Context) error {
	return s.health.Ping(ctx)
}
