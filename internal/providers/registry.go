package providers

import (
	"slices"
	"strings"

	"jokes-fetcher/internal/config"
)

// All builds every known adapter in a fixed order, minus those named in
// cfg.Disabled. Extra opts are applied after the config-derived ones.
func All(cfg config.ProvidersConfig, opts ...Option) []Provider {
	common := append([]Option{WithTimeout(cfg.Timeout), WithUserAgent(cfg.UserAgent)}, opts...)

	all := []Provider{
		NewJokeAPI(common...),
		NewDadJokes(common...),
		NewChuckNorris(common...),
		NewOfficialJoke(common...),
		NewSv443(common...),
		NewJokesOne(cfg.JokesOneAPIKey, common...),
	}

	return slices.DeleteFunc(all, func(p Provider) bool {
		return slices.ContainsFunc(cfg.Disabled, func(name string) bool {
			return strings.EqualFold(strings.TrimSpace(name), p.Name())
		})
	})
}
