package api

import (
	"context"
	"net/http"
	"strconv"

	"jokes-fetcher/internal/models"
	"jokes-fetcher/internal/service"
)

// Service is what the handlers need from the joke service.
type Service interface {
	DefaultCount() int
	Retrieve(ctx context.Context, count int) (*service.RetrieveResult, error)
	Random(ctx context.Context) (*models.StoredJoke, error)
	Live(ctx context.Context, provider, category string) (*models.JokeWithSource, error)
	Providers() []models.ProviderInfo
	Categories() []string
	Stats(ctx context.Context) (*service.Stats, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Retrieve handles GET /jokes/retrieve?count=N. A missing or unparsable
// count means the configured default; the service clamps the rest.
func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil {
		count = h.svc.DefaultCount()
	}

	res, err := h.svc.Retrieve(r.Context(), count)
	if err != nil {
		writeError(w, r, "retrieve jokes", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Random handles GET /jokes/random.
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	joke, err := h.svc.Random(r.Context())
	if err != nil {
		writeError(w, r, "random joke", err)
		return
	}
	writeJSON(w, http.StatusOK, RandomJokeResponse{Joke: toStoredJokeDTO(joke)})
}

// Live handles GET /jokes/live?provider=&category=. Nothing is stored.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	joke, err := h.svc.Live(r.Context(), q.Get("provider"), q.Get("category"))
	if err != nil {
		writeError(w, r, "live joke", err)
		return
	}
	writeJSON(w, http.StatusOK, LiveJokeResponse{Joke: *joke})
}

func (h *Handler) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProvidersResponse{Providers: h.svc.Providers()})
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats := h.svc.Categories()
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: cats})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, r, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) DBHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		writeError(w, r, "database health", err)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
