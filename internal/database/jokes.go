package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"jokes-fetcher/internal/models"
	"jokes-fetcher/pkg/logger"
)

const upsertColumns = 7

type JokeRepository struct {
	db *DB
}

func NewJokeRepository(db *DB) *JokeRepository {
	return &JokeRepository{db: db}
}

type dedupeKey struct {
	externalID string
	provider   string
}

// Dedupe collapses entries sharing (external id, provider); the last one
// wins but keeps the position of the first. Entries without an external id
// never conflict in the table, so they are all kept.
func Dedupe(entries []models.JokeWithSource) []models.JokeWithSource {
	out := make([]models.JokeWithSource, 0, len(entries))
	seen := make(map[dedupeKey]int, len(entries))

	for _, e := range entries {
		if e.SourceID == nil {
			out = append(out, e)
			continue
		}
		key := dedupeKey{externalID: *e.SourceID, provider: e.Provider}
		if idx, ok := seen[key]; ok {
			out[idx] = e
			continue
		}
		seen[key] = len(out)
		out = append(out, e)
	}

	return out
}

// validEntries drops entries breaking the content invariant. They are
// logged and skipped so one malformed joke does not fail the batch.
func validEntries(entries []models.JokeWithSource) []models.JokeWithSource {
	out := entries[:0]
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			logger.Warn("Skipping invalid joke",
				logger.String("provider", e.Provider),
				logger.Err(err),
			)
			continue
		}
		out = append(out, e)
	}
	return out
}

// buildUpsert renders one multi-row INSERT ... ON CONFLICT for entries.
func buildUpsert(entries []models.JokeWithSource) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO jokes (external_id, joke, category, type, safe, lang, provider) VALUES ")
	args := make([]any, 0, len(entries)*upsertColumns)

	for i, e := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := range upsertColumns {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("$")
			sb.WriteString(strconv.Itoa(i*upsertColumns + c + 1))
		}
		sb.WriteString(")")

		safe := true
		if e.Safe != nil {
			safe = *e.Safe
		}
		lang := models.DefaultLang
		if e.Lang != nil && *e.Lang != "" {
			lang = *e.Lang
		}

		args = append(args,
			e.SourceID,
			e.Content,
			models.LowerPtr(e.Category),
			string(e.Type),
			safe,
			lang,
			e.Provider,
		)
	}

	sb.WriteString(` ON CONFLICT (external_id, provider) DO UPDATE SET
		joke = EXCLUDED.joke,
		category = EXCLUDED.category,
		type = EXCLUDED.type,
		safe = EXCLUDED.safe,
		lang = EXCLUDED.lang,
		updated_at = CURRENT_TIMESTAMP
	RETURNING id, category, type, provider`)

	return sb.String(), args
}

// UpsertBatch writes the deduplicated batch in a single transaction and
// reports every written row. Nothing is written if any row fails.
func (r *JokeRepository) UpsertBatch(ctx context.Context, entries []models.JokeWithSource) ([]models.SavedJoke, error) {
	entries = validEntries(Dedupe(entries))
	if len(entries) == 0 {
		return nil, nil
	}

	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, &DatabaseError{Op: "begin", Err: err}
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("Failed to roll back upsert", logger.Err(err))
		}
	}()

	query, args := buildUpsert(entries)
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, &DatabaseError{Op: "upsert", Err: err}
	}

	saved, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SavedJoke, error) {
		var s models.SavedJoke
		var typ string
		if err := row.Scan(&s.ID, &s.Category, &typ, &s.Provider); err != nil {
			return s, err
		}
		s.Type = models.JokeType(typ)
		return s, nil
	})
	if err != nil {
		return nil, &DatabaseError{Op: "upsert", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &DatabaseError{Op: "commit", Err: err}
	}

	logger.Debug("Upserted jokes", logger.Int("rows", len(saved)))
	return saved, nil
}

func (r *JokeRepository) GetRandom(ctx context.Context) (*models.StoredJoke, error) {
	query := `
		SELECT id, external_id, joke, category, type, safe, lang, provider, created_at, updated_at
		FROM jokes
		ORDER BY RANDOM()
		LIMIT 1
	`
	var (
		joke    models.StoredJoke
		content []byte
		typ     string
	)
	err := r.db.Pool.QueryRow(ctx, query).Scan(
		&joke.ID, &joke.ExternalID, &content, &joke.Category, &typ,
		&joke.Safe, &joke.Lang, &joke.Provider, &joke.CreatedAt, &joke.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoJokesFound
		}
		return nil, &DatabaseError{Op: "get random", Err: err}
	}

	if err := json.Unmarshal(content, &joke.Content); err != nil {
		return nil, &DatabaseError{Op: "get random", Err: fmt.Errorf("decode joke content: %w", err)}
	}
	joke.Type = models.JokeType(typ)

	return &joke, nil
}

func (r *JokeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM jokes").Scan(&count); err != nil {
		return 0, &DatabaseError{Op: "count", Err: err}
	}
	return count, nil
}

func (r *JokeRepository) Stats(ctx context.Context) (*models.JokeStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(DISTINCT provider),
			COUNT(DISTINCT category),
			COUNT(*) FILTER (WHERE type = 'single'),
			COUNT(*) FILTER (WHERE type = 'twopart'),
			COUNT(*) FILTER (WHERE safe),
			COUNT(*) FILTER (WHERE NOT safe)
		FROM jokes
	`
	var s models.JokeStats
	err := r.db.Pool.QueryRow(ctx, query).Scan(
		&s.TotalJokes, &s.TotalProviders, &s.TotalCategories,
		&s.SingleJokes, &s.TwopartJokes, &s.SafeJokes, &s.UnsafeJokes,
	)
	if err != nil {
		return nil, &DatabaseError{Op: "stats", Err: err}
	}
	return &s, nil
}

func (r *JokeRepository) CountByProvider(ctx context.Context) ([]models.ProviderStats, error) {
	query := `
		SELECT
			provider,
			COUNT(*),
			COUNT(*) FILTER (WHERE type = 'single'),
			COUNT(*) FILTER (WHERE type = 'twopart'),
			COUNT(*) FILTER (WHERE safe),
			COUNT(*) FILTER (WHERE NOT safe),
			MAX(created_at)
		FROM jokes
		GROUP BY provider
		ORDER BY COUNT(*) DESC, provider
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, &DatabaseError{Op: "count by provider", Err: err}
	}

	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ProviderStats, error) {
		var s models.ProviderStats
		err := row.Scan(&s.Provider, &s.JokeCount, &s.SingleCount, &s.TwopartCount,
			&s.SafeCount, &s.UnsafeCount, &s.LastAdded)
		return s, err
	})
	if err != nil {
		return nil, &DatabaseError{Op: "count by provider", Err: err}
	}
	return stats, nil
}
