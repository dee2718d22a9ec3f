package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"jokes-fetcher/internal/models"
)

const (
	OfficialJokeName    = "Official Joke API"
	OfficialJokeBaseURL = "https://official-joke-api.appspot.com"
	officialDefaultCat  = "general"
)

type officialJokeResponse struct {
	ID        *int64  `json:"id"`
	Type      *string `json:"type"`
	Setup     *string `json:"setup"`
	Punchline *string `json:"punchline"`
}

type OfficialJoke struct {
	base
}

func NewOfficialJoke(opts ...Option) *OfficialJoke {
	return &OfficialJoke{base: newBase(OfficialJokeName, OfficialJokeBaseURL, []string{
		"general", "programming", "knock-knock", "dad",
	}, opts)}
}

func (p *OfficialJoke) GetRandomJoke(ctx context.Context) (*models.Joke, error) {
	return p.fetch(ctx, "random", p.baseURL+"/random_joke")
}

// GetJokeByCategory uses "general" for unknown categories.
func (p *OfficialJoke) GetJokeByCategory(ctx context.Context, category string) (*models.Joke, error) {
	lc, ok := p.supports(category)
	if !ok {
		lc = officialDefaultCat
	}
	return p.fetch(ctx, "by_category", fmt.Sprintf("%s/jokes/%s/random", p.baseURL, url.PathEscape(lc)))
}

// fetch accepts either a single object or an array of them; the category
// endpoint answers with a one-element array.
func (p *OfficialJoke) fetch(ctx context.Context, op, u string) (*models.Joke, error) {
	var raw json.RawMessage
	if err := p.getJSON(ctx, op, u, nil, &raw); err != nil {
		return nil, err
	}

	var resp officialJokeResponse
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []officialJokeResponse
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, p.fail(op, fmt.Errorf("%w: %w", ErrDecode, err))
		}
		if len(list) == 0 {
			return nil, p.fail(op, ErrEmptyJoke)
		}
		resp = list[0]
	} else if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, p.fail(op, fmt.Errorf("%w: %w", ErrDecode, err))
	}

	var id *string
	if resp.ID != nil {
		id = models.Ptr(strconv.FormatInt(*resp.ID, 10))
	}
	return twopart(&p.base, op, id, resp.Setup, resp.Punchline, resp.Type)
}
