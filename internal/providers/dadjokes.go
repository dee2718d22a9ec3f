package providers

import (
	"context"

	"jokes-fetcher/internal/models"
)

const (
	DadJokesName    = "icanhazdadjoke"
	DadJokesBaseURL = "https://icanhazdadjoke.com"
	dadJokesCat     = "dad jokes"
)

type dadJokeResponse struct {
	ID     *string `json:"id"`
	Joke   *string `json:"joke"`
	Status int     `json:"status"`
}

type DadJokes struct {
	base
}

func NewDadJokes(opts ...Option) *DadJokes {
	return &DadJokes{base: newBase(DadJokesName, DadJokesBaseURL, []string{dadJokesCat}, opts)}
}

func (p *DadJokes) GetRandomJoke(ctx context.Context) (*models.Joke, error) {
	var resp dadJokeResponse
	if err := p.getJSON(ctx, "random", p.baseURL+"/", nil, &resp); err != nil {
		return nil, err
	}
	return single(&p.base, "random", resp.ID, resp.Joke, models.Ptr(dadJokesCat))
}

// GetJokeByCategory ignores the category: everything here is a dad joke.
func (p *DadJokes) GetJokeByCategory(ctx context.Context, _ string) (*models.Joke, error) {
	return p.GetRandomJoke(ctx)
}
