package providers

import (
	"context"
	"net/url"

	"jokes-fetcher/internal/models"
)

const (
	ChuckNorrisName    = "Chuck Norris Jokes API"
	ChuckNorrisBaseURL = "https://api.chucknorris.io"
	chuckUncategorized = "uncategorized"
)

type chuckNorrisResponse struct {
	ID         *string  `json:"id"`
	Value      *string  `json:"value"`
	Categories []string `json:"categories"`
}

type ChuckNorris struct {
	base
}

func NewChuckNorris(opts ...Option) *ChuckNorris {
	return &ChuckNorris{base: newBase(ChuckNorrisName, ChuckNorrisBaseURL, []string{
		"animal", "career", "celebrity", "dev", "explicit", "fashion", "food", "history",
		"money", "movie", "music", "political", "religion", "science", "sport", "travel",
	}, opts)}
}

func (p *ChuckNorris) GetRandomJoke(ctx context.Context) (*models.Joke, error) {
	return p.fetch(ctx, "random", p.baseURL+"/jokes/random", chuckUncategorized)
}

// GetJokeByCategory asks for a random joke when the category is unknown.
func (p *ChuckNorris) GetJokeByCategory(ctx context.Context, category string) (*models.Joke, error) {
	lc, ok := p.supports(category)
	if !ok {
		return p.GetRandomJoke(ctx)
	}
	u := p.baseURL + "/jokes/random?category=" + url.QueryEscape(lc)
	return p.fetch(ctx, "by_category", u, lc)
}

func (p *ChuckNorris) fetch(ctx context.Context, op, u, fallbackCategory string) (*models.Joke, error) {
	var resp chuckNorrisResponse
	if err := p.getJSON(ctx, op, u, nil, &resp); err != nil {
		return nil, err
	}

	category := fallbackCategory
	if len(resp.Categories) > 0 {
		category = resp.Categories[0]
	}
	return single(&p.base, op, resp.ID, resp.Value, &category)
}
