package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is the shared "nothing matched" class: no provider, no
	// stored joke. Front-ends map it to 404.
	ErrNotFound    = errors.New("not found")
	ErrInvalidJoke = errors.New("invalid joke content")
)

const DefaultLang = "en"

type JokeType string

const (
	JokeTypeSingle  JokeType = "single"
	JokeTypeTwopart JokeType = "twopart"
)

func (t JokeType) Valid() bool {
	return t == JokeTypeSingle || t == JokeTypeTwopart
}

// JokeContent is stored as JSONB; all three keys are always written.
type JokeContent struct {
	Text      *string `json:"content"`
	Setup     *string `json:"setup"`
	Punchline *string `json:"punchline"`
}

type Joke struct {
	SourceID *string     `json:"id,omitempty"`
	Content  JokeContent `json:"joke"`
	Category *string     `json:"category,omitempty"`
	Type     JokeType    `json:"type"`
	Safe     *bool       `json:"safe,omitempty"`
	Lang     *string     `json:"lang,omitempty"`
}

func NewSingleJoke(text string) Joke {
	return Joke{
		Type:    JokeTypeSingle,
		Content: JokeContent{Text: &text},
	}
}

func NewTwopartJoke(setup, punchline string) Joke {
	return Joke{
		Type:    JokeTypeTwopart,
		Content: JokeContent{Setup: &setup, Punchline: &punchline},
	}
}

// Validate checks that exactly the fields belonging to the joke type are set.
func (j *Joke) Validate() error {
	c := j.Content
	switch j.Type {
	case JokeTypeSingle:
		if c.Text == nil || c.Setup != nil || c.Punchline != nil {
			return ErrInvalidJoke
		}
	case JokeTypeTwopart:
		if c.Text != nil || c.Setup == nil || c.Punchline == nil {
			return ErrInvalidJoke
		}
	default:
		return ErrInvalidJoke
	}
	return nil
}

// ExternalID returns the upstream identifier or "" when the provider gave none.
func (j *Joke) ExternalID() string {
	if j.SourceID == nil {
		return ""
	}
	return *j.SourceID
}

// JokeWithSource attributes a fetched joke to the base URL of its provider.
type JokeWithSource struct {
	Joke
	Provider string `json:"provider"`
}

type ProviderInfo struct {
	Name       string   `json:"name"`
	BaseURL    string   `json:"base_url"`
	Categories []string `json:"categories"`
}

// StoredJoke is a row of the jokes table.
type StoredJoke struct {
	ID         uuid.UUID   `json:"id"`
	ExternalID *string     `json:"external_id"`
	Content    JokeContent `json:"content"`
	Category   *string     `json:"category"`
	Type       JokeType    `json:"type"`
	Safe       bool        `json:"safe"`
	Lang       string      `json:"lang"`
	Provider   string      `json:"provider"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// SavedJoke is what a batch upsert reports back for every written row.
type SavedJoke struct {
	ID       uuid.UUID `json:"id"`
	Category *string   `json:"category"`
	Type     JokeType  `json:"type"`
	Provider string    `json:"provider"`
}

type JokeStats struct {
	TotalJokes      int64 `json:"total_jokes"`
	TotalProviders  int64 `json:"total_providers"`
	TotalCategories int64 `json:"total_categories"`
	SingleJokes     int64 `json:"single_jokes"`
	TwopartJokes    int64 `json:"twopart_jokes"`
	SafeJokes       int64 `json:"safe_jokes"`
	UnsafeJokes     int64 `json:"unsafe_jokes"`
}

type ProviderStats struct {
	Provider     string    `json:"provider"`
	JokeCount    int64     `json:"joke_count"`
	SingleCount  int64     `json:"single_count"`
	TwopartCount int64     `json:"twopart_count"`
	SafeCount    int64     `json:"safe_count"`
	UnsafeCount  int64     `json:"unsafe_count"`
	LastAdded    time.Time `json:"last_added"`
}

func Ptr[T any](v T) *T {
	return &v
}

// LowerPtr lower-cases an optional string; empty strings become nil.
func LowerPtr(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	l := strings.ToLower(*s)
	return &l
}

// StringPtr returns nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
