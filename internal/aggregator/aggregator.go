// Package aggregator picks jokes from a fixed pool of providers.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"jokes-fetcher/internal/models"
	"jokes-fetcher/internal/providers"
	"jokes-fetcher/pkg/logger"
)

var (
	ErrNoProviders      = errors.New("no joke providers configured")
	ErrProviderNotFound = fmt.Errorf("provider %w", models.ErrNotFound)
)

const defaultConcurrency = 10

type Option func(*Aggregator)

func WithRand(r Rand) Option {
	return func(a *Aggregator) {
		a.rng = r
	}
}

// WithConcurrency bounds how many provider calls GetMultipleJokes runs at once.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// Aggregator is read-only after New and safe for concurrent use.
type Aggregator struct {
	providers   []providers.Provider
	rng         Rand
	concurrency int
}

func New(ps []providers.Provider, opts ...Option) *Aggregator {
	a := &Aggregator{
		providers:   slices.Clone(ps),
		rng:         NewRand(uint64(time.Now().UnixNano())),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetRandomJoke asks one uniformly chosen provider for a joke. Provider
// errors are returned as is.
func (a *Aggregator) GetRandomJoke(ctx context.Context) (*models.JokeWithSource, error) {
	return a.fromPool(ctx, a.providers, func(p providers.Provider) (*models.Joke, error) {
		return p.GetRandomJoke(ctx)
	})
}

// GetJokeFromProvider uses the first provider whose name contains
// nameFragment, ignoring case.
func (a *Aggregator) GetJokeFromProvider(ctx context.Context, nameFragment string) (*models.JokeWithSource, error) {
	needle := strings.ToLower(nameFragment)
	idx := slices.IndexFunc(a.providers, func(p providers.Provider) bool {
		return strings.Contains(strings.ToLower(p.Name()), needle)
	})
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, nameFragment)
	}

	p := a.providers[idx]
	joke, err := p.GetRandomJoke(ctx)
	if err != nil {
		return nil, err
	}
	return &models.JokeWithSource{Joke: *joke, Provider: p.BaseURL()}, nil
}

// GetJokeByCategory picks among providers that list a category containing
// the requested one. When none does, it silently falls back to GetRandomJoke
// over the whole pool.
func (a *Aggregator) GetJokeByCategory(ctx context.Context, category string) (*models.JokeWithSource, error) {
	needle := strings.ToLower(category)
	var matching []providers.Provider
	for _, p := range a.providers {
		if slices.ContainsFunc(p.SupportedCategories(), func(c string) bool {
			return strings.Contains(strings.ToLower(c), needle)
		}) {
			matching = append(matching, p)
		}
	}

	if len(matching) == 0 {
		return a.GetRandomJoke(ctx)
	}

	return a.fromPool(ctx, matching, func(p providers.Provider) (*models.Joke, error) {
		return p.GetJokeByCategory(ctx, category)
	})
}

// GetMultipleJokes draws count random jokes. Failed draws are logged and
// skipped, so the result may hold anywhere from zero to count jokes. Results
// keep draw order.
func (a *Aggregator) GetMultipleJokes(ctx context.Context, count int) []models.JokeWithSource {
	if count <= 0 {
		return nil
	}

	results := make([]*models.JokeWithSource, count)

	g := new(errgroup.Group)
	g.SetLimit(a.concurrency)

	for i := range count {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			joke, err := a.GetRandomJoke(ctx)
			if err != nil {
				logger.Warn("Failed to fetch joke", logger.Int("draw", i), logger.Err(err))
				return nil
			}
			results[i] = joke
			return nil
		})
	}
	_ = g.Wait()

	jokes := make([]models.JokeWithSource, 0, count)
	for _, j := range results {
		if j != nil {
			jokes = append(jokes, *j)
		}
	}

	if failed := count - len(jokes); failed > 0 {
		logger.Info("Batch fetch finished with failures",
			logger.Int("requested", count),
			logger.Int("fetched", len(jokes)),
			logger.Int("failed", failed),
		)
	}

	return jokes
}

func (a *Aggregator) Providers() []models.ProviderInfo {
	infos := make([]models.ProviderInfo, 0, len(a.providers))
	for _, p := range a.providers {
		infos = append(infos, models.ProviderInfo{
			Name:       p.Name(),
			BaseURL:    p.BaseURL(),
			Categories: p.SupportedCategories(),
		})
	}
	return infos
}

// AllCategories returns the union of supported categories, sorted.
func (a *Aggregator) AllCategories() []string {
	var all []string
	for _, p := range a.providers {
		all = append(all, p.SupportedCategories()...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

func (a *Aggregator) fromPool(ctx context.Context, pool []providers.Provider, call func(providers.Provider) (*models.Joke, error)) (*models.JokeWithSource, error) {
	if len(pool) == 0 {
		return nil, ErrNoProviders
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := pool[a.rng.Intn(len(pool))]
	joke, err := call(p)
	if err != nil {
		return nil, err
	}
	return &models.JokeWithSource{Joke: *joke, Provider: p.BaseURL()}, nil
}
