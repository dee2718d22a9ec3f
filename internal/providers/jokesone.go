package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"jokes-fetcher/internal/models"
)

const (
	JokesOneName    = "Jokes One API"
	JokesOneBaseURL = "https://api.jokes.one"
	jokesOneHeader  = "X-JokesOne-Api-Secret"

	jokesOneDefaultCat  = "general"
	fallbackJokeText    = "Why don't scientists trust atoms? Because they make up everything!"
	fallbackJokeCatName = "science"
)

type jokesOneJoke struct {
	ID       *string `json:"id"`
	Text     *string `json:"text"`
	Lang     *string `json:"lang"`
	Category string  `json:"category"`
}

type jokesOneResponse struct {
	Contents struct {
		Jokes []struct {
			Category string       `json:"category"`
			Language string       `json:"language"`
			Joke     jokesOneJoke `json:"joke"`
		} `json:"jokes"`
	} `json:"contents"`
	// Older responses put the joke (or a list of them) at the top level.
	Joke json.RawMessage `json:"joke"`
}

// item picks the first joke out of whichever shape the response has.
func (r *jokesOneResponse) item() (jokesOneJoke, bool) {
	if len(r.Contents.Jokes) > 0 {
		first := r.Contents.Jokes[0]
		j := first.Joke
		if j.Category == "" {
			j.Category = first.Category
		}
		if j.Lang == nil {
			j.Lang = models.StringPtr(first.Language)
		}
		return j, true
	}

	raw := bytes.TrimSpace(r.Joke)
	if len(raw) == 0 {
		return jokesOneJoke{}, false
	}
	if raw[0] == '[' {
		var list []jokesOneJoke
		if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
			return jokesOneJoke{}, false
		}
		return list[0], true
	}
	var j jokesOneJoke
	if err := json.Unmarshal(raw, &j); err != nil {
		return jokesOneJoke{}, false
	}
	return j, true
}

// JokesOne serves the joke of the day. It degrades to a fixed joke when the
// upstream is unreachable or answers with a non-2xx status; the free tier is
// heavily rate limited.
type JokesOne struct {
	base
	apiKey string
}

func NewJokesOne(apiKey string, opts ...Option) *JokesOne {
	return &JokesOne{
		base: newBase(JokesOneName, JokesOneBaseURL, []string{
			"general", "dad", "programming", "science",
		}, opts),
		apiKey: apiKey,
	}
}

func (p *JokesOne) GetRandomJoke(ctx context.Context) (*models.Joke, error) {
	return p.jokeOfTheDay(ctx, "random")
}

// GetJokeByCategory returns the joke of the day; the API has no category lookup.
func (p *JokesOne) GetJokeByCategory(ctx context.Context, _ string) (*models.Joke, error) {
	return p.jokeOfTheDay(ctx, "by_category")
}

func (p *JokesOne) jokeOfTheDay(ctx context.Context, op string) (*models.Joke, error) {
	var headers map[string]string
	if p.apiKey != "" {
		headers = map[string]string{jokesOneHeader: p.apiKey}
	}

	var resp jokesOneResponse
	if err := p.getJSON(ctx, op, p.baseURL+"/jod", headers, &resp); err != nil {
		if ctx.Err() == nil && degradable(err) {
			return fallbackJoke(), nil
		}
		return nil, err
	}

	item, ok := resp.item()
	if !ok {
		return nil, p.fail(op, ErrEmptyJoke)
	}

	category := jokesOneDefaultCat
	if lc, ok := p.supports(item.Category); ok {
		category = lc
	}

	j, err := single(&p.base, op, item.ID, item.Text, &category)
	if err != nil {
		return nil, err
	}
	j.Lang = item.Lang
	return j, nil
}

func degradable(err error) bool {
	var se *StatusError
	return errors.Is(err, ErrUnreachable) || errors.As(err, &se)
}

func fallbackJoke() *models.Joke {
	j := models.NewSingleJoke(fallbackJokeText)
	j.Category = models.Ptr(fallbackJokeCatName)
	return &j
}
