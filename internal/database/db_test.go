package database

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jokes-fetcher/internal/models"
)

func TestConnectionError(t *testing.T) {
	baseErr := errors.New("connection refused")
	err := &ConnectionError{
		Host: "postgres.example.com",
		Port: 5432,
		Err:  baseErr,
	}

	if !errors.Is(err, baseErr) {
		t.Error("Expected underlying error to be unwrapped")
	}
	want := "failed to connect to database at postgres.example.com:5432: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDatabaseError(t *testing.T) {
	baseErr := errors.New("relation does not exist")
	var err error = &DatabaseError{Op: "upsert", Err: baseErr}

	if !errors.Is(err, ErrDatabase) {
		t.Error("DatabaseError should match ErrDatabase")
	}
	if !errors.Is(err, baseErr) {
		t.Error("Expected underlying error to be unwrapped")
	}
	if errors.Is(err, models.ErrNotFound) {
		t.Error("DatabaseError must not be a not-found error")
	}
}

func TestErrNoJokesFoundIsNotFound(t *testing.T) {
	if !errors.Is(ErrNoJokesFound, models.ErrNotFound) {
		t.Error("ErrNoJokesFound should wrap models.ErrNotFound")
	}
}

func entry(id *string, provider, text string) models.JokeWithSource {
	j := models.NewSingleJoke(text)
	j.SourceID = id
	return models.JokeWithSource{Joke: j, Provider: provider}
}

func texts(entries []models.JokeWithSource) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e.Content.Text)
	}
	return out
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.JokeWithSource
		want    []string
	}{
		{
			name: "empty",
			want: []string{},
		},
		{
			name: "no duplicates",
			entries: []models.JokeWithSource{
				entry(models.Ptr("1"), "https://a", "a1"),
				entry(models.Ptr("1"), "https://b", "b1"),
				entry(models.Ptr("2"), "https://a", "a2"),
			},
			want: []string{"a1", "b1", "a2"},
		},
		{
			name: "last wins at first position",
			entries: []models.JokeWithSource{
				entry(models.Ptr("1"), "https://a", "first"),
				entry(models.Ptr("2"), "https://a", "other"),
				entry(models.Ptr("1"), "https://a", "second"),
				entry(models.Ptr("1"), "https://a", "third"),
			},
			want: []string{"third", "other"},
		},
		{
			name: "missing ids are never collapsed",
			entries: []models.JokeWithSource{
				entry(nil, "https://a", "x"),
				entry(nil, "https://a", "y"),
			},
			want: []string{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Dedupe(tt.entries))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Dedupe() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildUpsert(t *testing.T) {
	tp := models.NewTwopartJoke("S", "P")
	tp.Category = models.Ptr("Programming")
	tp.Safe = models.Ptr(false)
	tp.Lang = models.Ptr("de")

	entries := []models.JokeWithSource{
		entry(models.Ptr("1"), "https://a", "hello"),
		{Joke: tp, Provider: "https://b"},
	}

	query, args := buildUpsert(entries)

	if !strings.Contains(query, "VALUES ($1, $2, $3, $4, $5, $6, $7), ($8, $9, $10, $11, $12, $13, $14) ON CONFLICT (external_id, provider)") {
		t.Errorf("Unexpected placeholders in %s", query)
	}
	if !strings.Contains(query, "updated_at = CURRENT_TIMESTAMP") || !strings.HasSuffix(query, "RETURNING id, category, type, provider") {
		t.Errorf("Unexpected upsert clause in %s", query)
	}
	if len(args) != 14 {
		t.Fatalf("len(args) = %d, want 14", len(args))
	}

	// defaults for the first row
	if args[3] != "single" || args[4] != true || args[5] != "en" || args[6] != "https://a" {
		t.Errorf("Unexpected first row args %v", args[:7])
	}
	if c, ok := args[2].(*string); !ok || c != nil {
		t.Errorf("category = %v, want nil", args[2])
	}

	// explicit values for the second row, category lower-cased
	if c := args[9].(*string); *c != "programming" {
		t.Errorf("category = %v, want programming", *c)
	}
	if args[10] != "twopart" || args[11] != false || args[12] != "de" {
		t.Errorf("Unexpected second row args %v", args[7:])
	}
	if id, ok := args[7].(*string); !ok || id != nil {
		t.Errorf("external_id = %v, want nil", args[7])
	}
}

func TestValidEntriesSkipsBrokenJokes(t *testing.T) {
	broken := models.JokeWithSource{
		Joke:     models.Joke{Type: models.JokeTypeSingle},
		Provider: "https://b",
	}
	entries := []models.JokeWithSource{
		entry(models.Ptr("1"), "https://a", "first"),
		broken,
		entry(nil, "https://a", "second"),
	}

	got := validEntries(entries)
	if diff := cmp.Diff([]string{"first", "second"}, texts(got)); diff != "" {
		t.Errorf("validEntries() mismatch (-want +got):\n%s", diff)
	}
}
