package aggregator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jokes-fetcher/internal/config"
	"jokes-fetcher/internal/models"
	"jokes-fetcher/internal/providers"
)

type fakeProvider struct {
	name       string
	url        string
	categories []string
	err        error
	calls      atomic.Int64
	lastCat    atomic.Value
}

func (f *fakeProvider) Name() string                  { return f.name }
func (f *fakeProvider) BaseURL() string               { return f.url }
func (f *fakeProvider) SupportedCategories() []string { return f.categories }

func (f *fakeProvider) GetRandomJoke(context.Context) (*models.Joke, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	j := models.NewSingleJoke(f.name)
	j.SourceID = models.Ptr(f.name + "-" + string(rune('0'+n%10)))
	return &j, nil
}

func (f *fakeProvider) GetJokeByCategory(ctx context.Context, category string) (*models.Joke, error) {
	f.lastCat.Store(category)
	return f.GetRandomJoke(ctx)
}

// seqRand replays a fixed sequence of draws, cycling when it runs out.
type seqRand struct {
	mu   sync.Mutex
	seq  []int
	next int
}

func (s *seqRand) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.seq[s.next%len(s.seq)] % n
	s.next++
	return v
}

func pool() (*fakeProvider, *fakeProvider, *fakeProvider) {
	return &fakeProvider{name: "JokeAPI", url: "https://a", categories: []string{"programming", "pun"}},
		&fakeProvider{name: "icanhazdadjoke", url: "https://b", categories: []string{"dad jokes"}},
		&fakeProvider{name: "Chuck Norris", url: "https://c", categories: []string{"dev", "pun"}}
}

func TestGetRandomJoke(t *testing.T) {
	a, b, c := pool()
	agg := New([]providers.Provider{a, b, c}, WithRand(&seqRand{seq: []int{1}}))

	got, err := agg.GetRandomJoke(context.Background())
	if err != nil {
		t.Fatalf("GetRandomJoke() error: %v", err)
	}
	if got.Provider != "https://b" || *got.Content.Text != "icanhazdadjoke" {
		t.Errorf("Unexpected joke %+v", got)
	}
}

func TestGetRandomJokeNoProviders(t *testing.T) {
	_, err := New(nil).GetRandomJoke(context.Background())
	if !errors.Is(err, ErrNoProviders) {
		t.Errorf("error = %v, want ErrNoProviders", err)
	}
}

func TestGetRandomJokePropagatesProviderError(t *testing.T) {
	upstream := &providers.ProviderError{Provider: "x", Op: "random", Err: errors.New("boom")}
	p := &fakeProvider{name: "x", url: "https://x", err: upstream}

	_, err := New([]providers.Provider{p}).GetRandomJoke(context.Background())
	if err != upstream {
		t.Errorf("error = %v, want the provider's error unchanged", err)
	}
}

func TestGetJokeFromProvider(t *testing.T) {
	a, b, c := pool()
	agg := New([]providers.Provider{a, b, c})

	tests := []struct {
		name     string
		fragment string
		wantURL  string
		wantErr  error
	}{
		{"exact", "Chuck Norris", "https://c", nil},
		{"case insensitive fragment", "DADJOKE", "https://b", nil},
		{"first match wins", "o", "https://a", nil},
		{"missing", "nope", "", ErrProviderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := agg.GetJokeFromProvider(context.Background(), tt.fragment)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, models.ErrNotFound) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got.Provider != tt.wantURL {
				t.Errorf("Provider = %s, want %s", got.Provider, tt.wantURL)
			}
		})
	}
}

func TestGetJokeByCategory(t *testing.T) {
	t.Run("filters by substring", func(t *testing.T) {
		a, b, c := pool()
		agg := New([]providers.Provider{a, b, c}, WithRand(&seqRand{seq: []int{1}}))

		got, err := agg.GetJokeByCategory(context.Background(), "PUN")
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		// matching pool is [a, c]; index 1 is c
		if got.Provider != "https://c" {
			t.Errorf("Provider = %s, want https://c", got.Provider)
		}
		if c.lastCat.Load() != "PUN" {
			t.Errorf("category passed = %v, want PUN", c.lastCat.Load())
		}
		if b.calls.Load() != 0 {
			t.Error("non-matching provider was called")
		}
	})

	t.Run("partial category", func(t *testing.T) {
		a, b, c := pool()
		agg := New([]providers.Provider{a, b, c}, WithRand(&seqRand{seq: []int{0}}))

		got, err := agg.GetJokeByCategory(context.Background(), "dad")
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if got.Provider != "https://b" {
			t.Errorf("Provider = %s, want https://b", got.Provider)
		}
	})

	t.Run("unknown category falls back to whole pool", func(t *testing.T) {
		a, b, c := pool()
		agg := New([]providers.Provider{a, b, c}, WithRand(&seqRand{seq: []int{2}}))

		got, err := agg.GetJokeByCategory(context.Background(), "astronomy")
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if got.Provider != "https://c" {
			t.Errorf("Provider = %s, want https://c", got.Provider)
		}
		if c.lastCat.Load() != nil {
			t.Error("fallback should use GetRandomJoke")
		}
	})
}

func TestGetMultipleJokesBestEffort(t *testing.T) {
	ok := &fakeProvider{name: "ok", url: "https://ok"}
	bad := &fakeProvider{name: "bad", url: "https://bad", err: errors.New("down")}

	// draws alternate ok, bad, ok, bad, ...
	agg := New([]providers.Provider{ok, bad}, WithRand(&seqRand{seq: []int{0, 1}}), WithConcurrency(1))

	got := agg.GetMultipleJokes(context.Background(), 10)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for _, j := range got {
		if j.Provider != "https://ok" {
			t.Errorf("Unexpected provider %s", j.Provider)
		}
	}
	if total := ok.calls.Load() + bad.calls.Load(); total != 10 {
		t.Errorf("provider calls = %d, want exactly 10", total)
	}
}

func TestGetMultipleJokesAllFail(t *testing.T) {
	bad := &fakeProvider{name: "bad", url: "https://bad", err: errors.New("down")}
	got := New([]providers.Provider{bad}).GetMultipleJokes(context.Background(), 5)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestGetMultipleJokesZero(t *testing.T) {
	a, _, _ := pool()
	if got := New([]providers.Provider{a}).GetMultipleJokes(context.Background(), 0); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if a.calls.Load() != 0 {
		t.Error("no provider should be called for count 0")
	}
}

func TestGetMultipleJokesCancelled(t *testing.T) {
	a, _, _ := pool()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := New([]providers.Provider{a}).GetMultipleJokes(ctx, 20)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestProvidersAndCategories(t *testing.T) {
	a, b, c := pool()
	agg := New([]providers.Provider{a, b, c})

	infos := agg.Providers()
	if len(infos) != 3 || infos[2].Name != "Chuck Norris" || infos[2].BaseURL != "https://c" {
		t.Errorf("Unexpected providers %+v", infos)
	}

	want := []string{"dad jokes", "dev", "programming", "pun"}
	if diff := cmp.Diff(want, agg.AllCategories()); diff != "" {
		t.Errorf("AllCategories() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCopiesProviders(t *testing.T) {
	a, b, _ := pool()
	ps := []providers.Provider{a, b}
	agg := New(ps)
	ps[0] = b

	if agg.Providers()[0].Name != "JokeAPI" {
		t.Error("aggregator shares the caller's slice")
	}
}

func TestNewRandRange(t *testing.T) {
	r := NewRand(1)
	for range 1000 {
		if v := r.Intn(6); v < 0 || v >= 6 {
			t.Fatalf("Intn(6) = %d", v)
		}
	}
}

// namedPool mirrors the production provider set by name and URL without
// touching the network.
func namedPool() []providers.Provider {
	var out []providers.Provider
	for _, p := range providers.All(config.ProvidersConfig{}) {
		out = append(out, &fakeProvider{name: p.Name(), url: p.BaseURL()})
	}
	return out
}

func TestGetJokeFromProviderByRegisteredName(t *testing.T) {
	agg := New(namedPool())

	tests := []struct {
		fragment string
		wantURL  string
	}{
		{"jokes", providers.JokeAPIBaseURL},
		{"jokeapi.dev", providers.JokeAPIBaseURL},
		{"JokesAPI", providers.JokeAPIBaseURL},
		{"Chuck Norris Jokes", providers.ChuckNorrisBaseURL},
		{"dad", providers.DadJokesBaseURL},
		{"official", providers.OfficialJokeBaseURL},
		{"sv443", providers.Sv443BaseURL},
		{"jokes one", providers.JokesOneBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			got, err := agg.GetJokeFromProvider(context.Background(), tt.fragment)
			if err != nil {
				t.Fatalf("GetJokeFromProvider(%q) error: %v", tt.fragment, err)
			}
			if got.Provider != tt.wantURL {
				t.Errorf("Provider = %s, want %s", got.Provider, tt.wantURL)
			}
		})
	}
}
