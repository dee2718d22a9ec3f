// Package bot is a Telegram front-end for the joke service.
package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v4"

	"jokes-fetcher/internal/config"
	"jokes-fetcher/internal/models"
	"jokes-fetcher/internal/service"
	"jokes-fetcher/pkg/logger"
)

var (
	ErrRateLimited = errors.New("telegram rate limited")
	ErrEmptyToken  = errors.New("telegram bot token is required")
)

const (
	commandTimeout  = 30 * time.Second
	maxSendAttempts = 3
)

type Service interface {
	Random(ctx context.Context) (*models.StoredJoke, error)
	Retrieve(ctx context.Context, count int) (*service.RetrieveResult, error)
	Live(ctx context.Context, provider, category string) (*models.JokeWithSource, error)
	Providers() []models.ProviderInfo
	Categories() []string
	Stats(ctx context.Context) (*service.Stats, error)
}

type Bot struct {
	settings telebot.Settings
	svc      Service
	cfg      config.BotConfig
}

func New(cfg config.BotConfig, svc Service) (*Bot, error) {
	if cfg.Token == "" {
		return nil, ErrEmptyToken
	}

	return &Bot{
		cfg: cfg,
		svc: svc,
		settings: telebot.Settings{
			Token:  cfg.Token,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		},
	}, nil
}

// Start polls Telegram until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	tbot, err := telebot.NewBot(b.settings)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	b.setupHandlers(ctx, tbot)

	go func() {
		<-ctx.Done()
		tbot.Stop()
	}()

	logger.Info("Telegram bot started", logger.String("username", tbot.Me.Username))
	tbot.Start()
	logger.Info("Telegram bot stopped")
	return nil
}

func (b *Bot) setupHandlers(ctx context.Context, bot *telebot.Bot) {
	for _, cmd := range []string{"/start", "/help", "/joke", "/live", "/fetch", "/providers", "/categories", "/stats"} {
		bot.Handle(cmd, b.command(ctx, cmd))
	}

	bot.Handle(telebot.OnText, func(c telebot.Context) error {
		logger.Debug("Incoming text message",
			logger.Int64("user_id", c.Sender().ID),
			logger.String("username", c.Sender().Username),
		)
		return b.reply(c, "Use /joke to get a joke!")
	})
}

func (b *Bot) command(ctx context.Context, cmd string) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		logger.Info("Incoming command",
			logger.Int64("user_id", c.Sender().ID),
			logger.String("command", cmd),
		)

		cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()

		return b.reply(c, b.answer(cmdCtx, cmd, c.Args()))
	}
}

// answer renders the HTML reply to one command.
func (b *Bot) answer(ctx context.Context, cmd string, args []string) string {
	switch cmd {
	case "/start", "/help":
		return helpText

	case "/joke":
		joke, err := b.svc.Random(ctx)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return "No jokes stored yet. Try /fetch first!"
			}
			logger.Error("Failed to get joke", logger.Err(err))
			return "Sorry, no jokes available right now. Try again later!"
		}
		return formatJoke(joke.Content, joke.Category, joke.Provider)

	case "/live":
		category := strings.Join(args, " ")
		joke, err := b.svc.Live(ctx, "", category)
		if err != nil {
			logger.Warn("Live joke failed", logger.Err(err))
			return "The joke providers are not answering right now."
		}
		return formatJoke(joke.Content, joke.Category, joke.Provider)

	case "/fetch":
		count := 10
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				count = n
			}
		}
		res, err := b.svc.Retrieve(ctx, count)
		if err != nil {
			logger.Error("Retrieve from bot failed", logger.Err(err))
			return "Failed to save jokes."
		}
		return fmt.Sprintf("Saved <b>%d</b> jokes.", res.SavedCount)

	case "/providers":
		var sb strings.Builder
		sb.WriteString("<b>Providers</b>\n")
		for _, p := range b.svc.Providers() {
			fmt.Fprintf(&sb, "\n• %s (%s)", html.EscapeString(p.Name), html.EscapeString(strings.Join(p.Categories, ", ")))
		}
		return sb.String()

	case "/categories":
		return "<b>Categories</b>\n\n" + html.EscapeString(strings.Join(b.svc.Categories(), ", "))

	case "/stats":
		stats, err := b.svc.Stats(ctx)
		if err != nil {
			logger.Error("Failed to get stats", logger.Err(err))
			return "Failed to get statistics"
		}
		t := stats.Totals
		return fmt.Sprintf(
			"<b>Statistics</b>\n\n"+
				"Total jokes: %d\n"+
				"Providers: %d\n"+
				"Categories: %d\n"+
				"Single / two-part: %d / %d\n"+
				"Safe / unsafe: %d / %d",
			t.TotalJokes, t.TotalProviders, t.TotalCategories,
			t.SingleJokes, t.TwopartJokes, t.SafeJokes, t.UnsafeJokes,
		)
	}

	return "Unknown command. " + helpText
}

func formatJoke(content models.JokeContent, category *string, provider string) string {
	var sb strings.Builder
	switch {
	case content.Text != nil:
		sb.WriteString(html.EscapeString(*content.Text))
	case content.Setup != nil && content.Punchline != nil:
		sb.WriteString(html.EscapeString(*content.Setup))
		sb.WriteString("\n\n<tg-spoiler>")
		sb.WriteString(html.EscapeString(*content.Punchline))
		sb.WriteString("</tg-spoiler>")
	}

	label := "uncategorized"
	if category != nil {
		label = *category
	}
	fmt.Fprintf(&sb, "\n\n<i>[%s] %s</i>", html.EscapeString(label), html.EscapeString(provider))
	return sb.String()
}

func (b *Bot) reply(c telebot.Context, text string) error {
	delay := time.Second

	for i := range maxSendAttempts {
		err := c.Send(text, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
		if err == nil {
			return nil
		}

		if !strings.Contains(err.Error(), "Too Many Requests") {
			return fmt.Errorf("failed to send message: %w", err)
		}

		logger.Warn("Rate limited, retrying...",
			logger.Int("retry", i+1),
			logger.Int("max_retries", maxSendAttempts),
		)
		time.Sleep(delay)
		delay *= 2
	}

	return ErrRateLimited
}

const helpText = "<b>Jokes Fetcher</b>\n\n" +
	"Commands:\n" +
	"• /joke - A random stored joke\n" +
	"• /live [category] - A fresh joke straight from a provider\n" +
	"• /fetch [count] - Fetch and store up to 100 jokes\n" +
	"• /providers - Joke providers and their categories\n" +
	"• /categories - All known categories\n" +
	"• /stats - Store statistics\n" +
	"• /help - Show this help message"
