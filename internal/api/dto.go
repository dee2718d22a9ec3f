package api

import (
	"github.com/google/uuid"

	"jokes-fetcher/internal/models"
	"jokes-fetcher/internal/service"
)

// RetrieveResponse is the body of GET /jokes/retrieve.
type RetrieveResponse = service.RetrieveResult

type StoredJokeDTO struct {
	ID       uuid.UUID          `json:"id"`
	Category *string            `json:"category"`
	Type     models.JokeType    `json:"type"`
	Content  models.JokeContent `json:"content"`
	Safe     bool               `json:"safe"`
	Lang     string             `json:"lang"`
	Provider string             `json:"provider"`
}

type RandomJokeResponse struct {
	Joke StoredJokeDTO `json:"joke"`
}

func toStoredJokeDTO(j *models.StoredJoke) StoredJokeDTO {
	return StoredJokeDTO{
		ID:       j.ID,
		Category: j.Category,
		Type:     j.Type,
		Content:  j.Content,
		Safe:     j.Safe,
		Lang:     j.Lang,
		Provider: j.Provider,
	}
}

type LiveJokeResponse struct {
	Joke models.JokeWithSource `json:"joke"`
}

type ProvidersResponse struct {
	Providers []models.ProviderInfo `json:"providers"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
