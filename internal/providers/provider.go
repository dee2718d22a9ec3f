// Package providers adapts third-party joke APIs to the canonical joke model.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"jokes-fetcher/internal/models"
)

var (
	// ErrProvider matches every *ProviderError.
	ErrProvider = errors.New("provider error")

	ErrUnreachable = errors.New("provider unreachable")
	ErrDecode      = errors.New("failed to decode provider response")
	ErrEmptyJoke   = errors.New("provider returned no joke content")
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "jokes-fetcher/1.0"
	maxBodySize      = 1 << 20
)

// Provider is one upstream joke API.
type Provider interface {
	Name() string
	BaseURL() string
	GetRandomJoke(ctx context.Context) (*models.Joke, error)
	// GetJokeByCategory never fails because of an unknown category: the
	// provider substitutes its own default instead.
	GetJokeByCategory(ctx context.Context, category string) (*models.Joke, error)
	SupportedCategories() []string
}

type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.Code)
}

type Option func(*base)

func WithHTTPClient(client *http.Client) Option {
	return func(b *base) {
		b.client = client
	}
}

// WithBaseURL points the adapter at another host, e.g. a test server.
func WithBaseURL(url string) Option {
	return func(b *base) {
		b.baseURL = strings.TrimRight(url, "/")
	}
}

func WithUserAgent(ua string) Option {
	return func(b *base) {
		if ua != "" {
			b.userAgent = ua
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(b *base) {
		if d > 0 {
			b.client.Timeout = d
		}
	}
}

// base carries what every adapter shares. Adapters embed it and get Name,
// BaseURL and SupportedCategories for free.
type base struct {
	name       string
	baseURL    string
	userAgent  string
	categories []string
	client     *http.Client
}

func newBase(name, baseURL string, categories []string, opts []Option) base {
	b := base{
		name:       name,
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		categories: categories,
		client:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) Name() string {
	return b.name
}

func (b *base) BaseURL() string {
	return b.baseURL
}

func (b *base) SupportedCategories() []string {
	return slices.Clone(b.categories)
}

// supports reports whether category is in the supported set, ignoring case,
// and returns its lower-cased form.
func (b *base) supports(category string) (string, bool) {
	lc := strings.ToLower(category)
	return lc, slices.Contains(b.categories, lc)
}

func (b *base) fail(op string, err error) error {
	return &ProviderError{Provider: b.name, Op: op, Err: err}
}

func (b *base) getJSON(ctx context.Context, op, url string, headers map[string]string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return b.fail(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", b.userAgent)
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return b.fail(op, fmt.Errorf("%w: %w", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return b.fail(op, &StatusError{Code: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return b.fail(op, fmt.Errorf("%w: %w", ErrUnreachable, err))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return b.fail(op, fmt.Errorf("%w: %w", ErrDecode, err))
	}

	return nil
}

func single(b *base, op string, id, text, category *string) (*models.Joke, error) {
	if text == nil || *text == "" {
		return nil, b.fail(op, ErrEmptyJoke)
	}
	j := models.NewSingleJoke(*text)
	j.SourceID = id
	j.Category = models.LowerPtr(category)
	return &j, nil
}

func twopart(b *base, op string, id, setup, punchline, category *string) (*models.Joke, error) {
	if setup == nil || punchline == nil || *setup == "" || *punchline == "" {
		return nil, b.fail(op, ErrEmptyJoke)
	}
	j := models.NewTwopartJoke(*setup, *punchline)
	j.SourceID = id
	j.Category = models.LowerPtr(category)
	return &j, nil
}
