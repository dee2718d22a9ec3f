package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mattn/go-runewidth"
	"github.com/urfave/cli/v3"

	"jokes-fetcher/internal/aggregator"
	"jokes-fetcher/internal/config"
	"jokes-fetcher/internal/models"
	"jokes-fetcher/internal/providers"
	"jokes-fetcher/internal/queue"
	"jokes-fetcher/pkg/logger"
)

// probeEnv is the slice of the service configuration the probe needs; it
// never touches the database.
type probeEnv struct {
	Providers config.ProvidersConfig `env-prefix:"PROVIDERS_"`
	NATS      config.NATSConfig      `env-prefix:"NATS_"`
}

func loadEnv() (*probeEnv, error) {
	var env probeEnv
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &env, nil
}

func newAggregator(env *probeEnv) *aggregator.Aggregator {
	return aggregator.New(providers.All(env.Providers), aggregator.WithConcurrency(env.Providers.Concurrency))
}

func listProviders(_ context.Context, cmd *cli.Command) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	out := os.Stdout
	for _, p := range newAggregator(env).Providers() {
		fmt.Fprintf(out, "%-20s %s\n", p.Name, p.BaseURL)
		fmt.Fprintf(out, "%-20s %s\n", "", strings.Join(p.Categories, ", "))
	}
	return nil
}

func fetch(ctx context.Context, cmd *cli.Command) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	agg := newAggregator(env)

	provider := cmd.String("provider")
	category := cmd.String("category")
	count := int(cmd.Int("count"))
	width := int(cmd.Int("width"))
	out := os.Stdout

	if provider == "" && category == "" {
		jokes := agg.GetMultipleJokes(ctx, count)
		for i := range jokes {
			printJoke(out, &jokes[i], width)
		}
		fmt.Fprintf(out, "\n%d of %d fetched\n", len(jokes), count)
		return nil
	}

	for range count {
		var (
			joke *models.JokeWithSource
			err  error
		)
		if provider != "" {
			joke, err = agg.GetJokeFromProvider(ctx, provider)
		} else {
			joke, err = agg.GetJokeByCategory(ctx, category)
		}
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return err
			}
			logger.Warn("Fetch failed", logger.Err(err))
			continue
		}
		printJoke(out, joke, width)
	}
	return nil
}

func printJoke(w io.Writer, j *models.JokeWithSource, width int) {
	var text string
	if j.Content.Text != nil {
		text = *j.Content.Text
	} else if j.Content.Setup != nil && j.Content.Punchline != nil {
		text = *j.Content.Setup + " / " + *j.Content.Punchline
	}
	text = strings.Join(strings.Fields(text), " ")

	category := "-"
	if j.Category != nil {
		category = *j.Category
	}

	prefix := fmt.Sprintf("[%s|%s] ", j.Type, category)
	if width > 0 {
		text = runewidth.Truncate(text, max(width-runewidth.StringWidth(prefix), 10), "…")
	}
	fmt.Fprintf(w, "%s%s\n    %s\n", prefix, text, j.Provider)
}

func watch(ctx context.Context, cmd *cli.Command) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	if url := cmd.String("nats-url"); url != "" {
		env.NATS.URL = url
	}

	q, err := queue.New(env.NATS)
	if err != nil {
		return err
	}
	defer q.Close()

	out := os.Stdout
	err = q.ConsumeSaved(ctx, func(m *queue.SavedMessage) error {
		category := "-"
		if m.Category != nil {
			category = *m.Category
		}
		_, err := fmt.Fprintf(out, "%s %s %-8s %-16s %s\n",
			m.SavedAt.Format("15:04:05"), m.ID, m.Type, category, m.Provider)
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	logger.Init(os.Getenv("APP_LOG_LEVEL"), os.Stderr)

	cmd := &cli.Command{
		Name:  "probe",
		Usage: "Query the joke providers directly, or follow saved jokes on NATS",
		Commands: []*cli.Command{
			{
				Name:   "providers",
				Usage:  "List configured providers and their categories",
				Action: listProviders,
			},
			{
				Name:   "fetch",
				Usage:  "Fetch live jokes without storing them",
				Action: fetch,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage:   "Provider name fragment",
					},
					&cli.StringFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Category to ask for",
					},
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of jokes",
						Value:   5,
					},
					&cli.IntFlag{
						Name:    "width",
						Usage:   "Truncate jokes to this many terminal columns (0 disables)",
						Value:   100,
						Sources: cli.EnvVars("COLUMNS"),
					},
				},
			},
			{
				Name:   "watch",
				Usage:  "Print saved-joke events from JetStream",
				Action: watch,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "nats-url",
						Usage:   "NATS server URL",
						Sources: cli.EnvVars("NATS_URL"),
					},
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		logger.Error("Probe failed", logger.Err(err))
		os.Exit(1)
	}
}
