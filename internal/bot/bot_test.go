package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jokes-fetcher/internal/config"
	"jokes-fetcher/internal/database"
	"jokes-fetcher/internal/models"
	"jokes-fetcher/internal/service"
)

type fakeService struct {
	random      *models.StoredJoke
	randomErr   error
	gotCount    int
	gotCategory string
}

func (f *fakeService) Random(context.Context) (*models.StoredJoke, error) {
	return f.random, f.randomErr
}

func (f *fakeService) Retrieve(_ context.Context, count int) (*service.RetrieveResult, error) {
	f.gotCount = count
	return &service.RetrieveResult{SavedCount: service.ClampCount(count)}, nil
}

func (f *fakeService) Live(_ context.Context, _, category string) (*models.JokeWithSource, error) {
	f.gotCategory = category
	j := models.NewTwopartJoke("Why <b>?", "Because & so.")
	return &models.JokeWithSource{Joke: j, Provider: "https://a"}, nil
}

func (f *fakeService) Providers() []models.ProviderInfo {
	return []models.ProviderInfo{{Name: "Chuck Norris", Categories: []string{"dev", "food"}}}
}

func (f *fakeService) Categories() []string { return []string{"dev", "pun"} }

func (f *fakeService) Stats(context.Context) (*service.Stats, error) {
	return &service.Stats{Totals: models.JokeStats{TotalJokes: 12}}, nil
}

func newTestBot(t *testing.T, svc Service) *Bot {
	t.Helper()
	b, err := New(config.BotConfig{Enabled: true, Token: "test-token"}, svc)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return b
}

func TestNewBot(t *testing.T) {
	_, err := New(config.BotConfig{Token: "test-token"}, &fakeService{})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestNewBotNoToken(t *testing.T) {
	_, err := New(config.BotConfig{Token: ""}, &fakeService{})
	if !errors.Is(err, ErrEmptyToken) {
		t.Errorf("error = %v, want ErrEmptyToken", err)
	}
}

func TestAnswerJoke(t *testing.T) {
	svc := &fakeService{random: &models.StoredJoke{
		Content:  models.JokeContent{Text: models.Ptr("Knock knock")},
		Category: models.Ptr("pun"),
		Provider: "https://v2.jokeapi.dev",
	}}
	got := newTestBot(t, svc).answer(context.Background(), "/joke", nil)

	if !strings.HasPrefix(got, "Knock knock") || !strings.Contains(got, "[pun] https://v2.jokeapi.dev") {
		t.Errorf("answer = %q", got)
	}
}

func TestAnswerJokeEmptyStore(t *testing.T) {
	svc := &fakeService{randomErr: database.ErrNoJokesFound}
	got := newTestBot(t, svc).answer(context.Background(), "/joke", nil)

	if !strings.Contains(got, "/fetch") {
		t.Errorf("answer = %q, want hint to /fetch", got)
	}
}

func TestAnswerLiveEscapesHTML(t *testing.T) {
	svc := &fakeService{}
	got := newTestBot(t, svc).answer(context.Background(), "/live", []string{"knock-knock"})

	if svc.gotCategory != "knock-knock" {
		t.Errorf("category = %q", svc.gotCategory)
	}
	if !strings.Contains(got, "Why &lt;b&gt;?") || !strings.Contains(got, "<tg-spoiler>Because &amp; so.</tg-spoiler>") {
		t.Errorf("answer = %q", got)
	}
	if !strings.Contains(got, "[uncategorized]") {
		t.Errorf("answer = %q, want uncategorized label", got)
	}
}

func TestAnswerFetch(t *testing.T) {
	tests := []struct {
		args      []string
		wantCount int
		wantText  string
	}{
		{nil, 10, "<b>10</b>"},
		{[]string{"3"}, 3, "<b>3</b>"},
		{[]string{"500"}, 500, "<b>100</b>"},
		{[]string{"many"}, 10, "<b>10</b>"},
	}

	for _, tt := range tests {
		svc := &fakeService{}
		got := newTestBot(t, svc).answer(context.Background(), "/fetch", tt.args)
		if svc.gotCount != tt.wantCount || !strings.Contains(got, tt.wantText) {
			t.Errorf("args %v: count=%d answer=%q", tt.args, svc.gotCount, got)
		}
	}
}

func TestAnswerListings(t *testing.T) {
	b := newTestBot(t, &fakeService{})
	ctx := context.Background()

	if got := b.answer(ctx, "/providers", nil); !strings.Contains(got, "Chuck Norris (dev, food)") {
		t.Errorf("providers = %q", got)
	}
	if got := b.answer(ctx, "/categories", nil); !strings.Contains(got, "dev, pun") {
		t.Errorf("categories = %q", got)
	}
	if got := b.answer(ctx, "/stats", nil); !strings.Contains(got, "Total jokes: 12") {
		t.Errorf("stats = %q", got)
	}
	if got := b.answer(ctx, "/help", nil); got != helpText {
		t.Errorf("help = %q", got)
	}
}
