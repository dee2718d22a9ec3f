// Package queue announces saved jokes on a NATS JetStream subject.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"jokes-fetcher/internal/config"
	"jokes-fetcher/internal/models"
	"jokes-fetcher/pkg/logger"
)

const (
	ConsumerGroup = "jokes-fetcher"
	fetchBatch    = 10
	fetchWait     = 500 * time.Millisecond
)

// jetStream is the part of nats.JetStreamContext the publisher uses.
type jetStream interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

type NATS struct {
	conn      *nats.Conn
	jetstream nats.JetStreamContext
	publisher jetStream
	cfg       config.NATSConfig
}

func New(cfg config.NATSConfig) (*NATS, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name(ConsumerGroup))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to get JetStream: %w", err)
	}

	if err := ensureStream(js, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	return &NATS{
		conn:      conn,
		jetstream: js,
		publisher: js,
		cfg:       cfg,
	}, nil
}

func ensureStream(js nats.JetStreamContext, cfg config.NATSConfig) error {
	_, err := js.StreamInfo(cfg.StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream %s: %w", cfg.StreamName, err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{cfg.Subject},
		MaxAge:   7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
	}
	logger.Info("JetStream stream created", logger.String("stream", cfg.StreamName))
	return nil
}

func (n *NATS) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}

// SavedMessage is published once for every row a batch upsert wrote.
type SavedMessage struct {
	ID       uuid.UUID       `json:"id"`
	Category *string         `json:"category"`
	Type     models.JokeType `json:"type"`
	Provider string          `json:"provider"`
	SavedAt  time.Time       `json:"saved_at"`
}

// PublishSaved publishes every saved joke and stops at the first failure.
func (n *NATS) PublishSaved(ctx context.Context, saved []models.SavedJoke) error {
	now := time.Now().UTC()
	for _, s := range saved {
		data, err := json.Marshal(SavedMessage{
			ID:       s.ID,
			Category: s.Category,
			Type:     s.Type,
			Provider: s.Provider,
			SavedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal saved joke: %w", err)
		}

		if _, err := n.publisher.Publish(n.cfg.Subject, data, nats.Context(ctx)); err != nil {
			return fmt.Errorf("failed to publish saved joke %s: %w", s.ID, err)
		}
	}

	logger.Debug("Saved jokes published to queue",
		logger.String("subject", n.cfg.Subject),
		logger.Int("count", len(saved)),
	)
	return nil
}

// ConsumeSaved pulls saved-joke messages until ctx is done. Messages the
// handler rejects are redelivered.
func (n *NATS) ConsumeSaved(ctx context.Context, handler func(*SavedMessage) error) error {
	sub, err := n.jetstream.PullSubscribe(
		n.cfg.Subject,
		ConsumerGroup,
		nats.BindStream(n.cfg.StreamName),
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to saved jokes: %w", err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msgs, err := sub.Fetch(fetchBatch, nats.MaxWait(fetchWait))
			if err != nil {
				if errors.Is(err, nats.ErrTimeout) {
					continue
				}
				return fmt.Errorf("failed to fetch messages: %w", err)
			}

			for _, msg := range msgs {
				handleMessage(msg, handler)
			}
		}
	}
}

type ackable interface {
	Ack(opts ...nats.AckOpt) error
	Nak(opts ...nats.AckOpt) error
}

func handleMessage(msg *nats.Msg, handler func(*SavedMessage) error) {
	process(msg.Data, msg, handler)
}

func process(data []byte, msg ackable, handler func(*SavedMessage) error) {
	var saved SavedMessage
	if err := json.Unmarshal(data, &saved); err != nil {
		logger.Error("Failed to unmarshal saved joke message", logger.Err(err))
		// a malformed message will never parse; drop it
		_ = msg.Ack()
		return
	}

	if err := handler(&saved); err != nil {
		logger.Error("Failed to process saved joke", logger.Err(err))
		_ = msg.Nak()
		return
	}

	_ = msg.Ack()
}
