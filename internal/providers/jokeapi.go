package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"jokes-fetcher/internal/models"
)

const (
	JokeAPIName    = "JokesAPI (jokeapi.dev)"
	JokeAPIBaseURL = "https://v2.jokeapi.dev"

	Sv443Name    = "Sv443 JokeAPI"
	Sv443BaseURL = "https://sv443.net/jokeapi/v2"
)

var errUpstreamFlagged = errors.New("upstream reported an error")

// jokeAPIResponse is shared by JokeAPI and its Sv443 mirror.
type jokeAPIResponse struct {
	Error    bool    `json:"error"`
	Message  string  `json:"message"`
	ID       *int64  `json:"id"`
	Category *string `json:"category"`
	Type     string  `json:"type"`
	Joke     *string `json:"joke"`
	Setup    *string `json:"setup"`
	Delivery *string `json:"delivery"`
	Safe     *bool   `json:"safe"`
	Lang     *string `json:"lang"`
}

func (r *jokeAPIResponse) toJoke(b *base, op string) (*models.Joke, error) {
	if r.Error {
		return nil, b.fail(op, fmt.Errorf("%w: %s", errUpstreamFlagged, r.Message))
	}

	var id *string
	if r.ID != nil {
		id = models.Ptr(strconv.FormatInt(*r.ID, 10))
	}

	var (
		j   *models.Joke
		err error
	)
	if r.Type == string(models.JokeTypeSingle) {
		j, err = single(b, op, id, r.Joke, r.Category)
	} else {
		j, err = twopart(b, op, id, r.Setup, r.Delivery, r.Category)
	}
	if err != nil {
		return nil, err
	}

	j.Safe = r.Safe
	j.Lang = r.Lang
	return j, nil
}

type JokeAPI struct {
	base
	query string
}

func NewJokeAPI(opts ...Option) *JokeAPI {
	return &JokeAPI{
		base: newBase(JokeAPIName, JokeAPIBaseURL, []string{
			"any", "miscellaneous", "programming", "dark", "pun", "spooky", "christmas",
		}, opts),
		query: "safe-mode",
	}
}

func (p *JokeAPI) GetRandomJoke(ctx context.Context) (*models.Joke, error) {
	return p.fetch(ctx, "random", "Any")
}

// GetJokeByCategory falls back to "Any" for categories JokeAPI does not know.
func (p *JokeAPI) GetJokeByCategory(ctx context.Context, category string) (*models.Joke, error) {
	if _, ok := p.supports(category); !ok {
		category = "Any"
	}
	return p.fetch(ctx, "by_category", category)
}

func (p *JokeAPI) fetch(ctx context.Context, op, category string) (*models.Joke, error) {
	u := fmt.Sprintf("%s/joke/%s?%s", p.baseURL, url.PathEscape(category), p.query)

	var resp jokeAPIResponse
	if err := p.getJSON(ctx, op, u, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toJoke(&p.base, op)
}

// Sv443 is the sv443.net mirror of JokeAPI. It speaks the same wire format
// but always asks for both joke types explicitly.
type Sv443 struct {
	JokeAPI
}

func NewSv443(opts ...Option) *Sv443 {
	return &Sv443{
		JokeAPI: JokeAPI{
			base: newBase(Sv443Name, Sv443BaseURL, []string{
				"programming", "miscellaneous", "dark", "pun", "spooky", "christmas",
			}, opts),
			query: "safe-mode&type=single,twopart",
		},
	}
}
