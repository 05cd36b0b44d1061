// Package telegram answers shopping questions sent to a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shopping-agent/logger"
)

const (
	startText = "👋 Hi! I'm a shopping assistant for the furniture store.\n\n" +
		"Ask me about products, new arrivals, discounts or gift ideas."

	helpText = "Available commands:\n" +
		"/start - Start the bot\n" +
		"/help - Show this help message\n\n" +
		"Or just ask me things like:\n" +
		"• \"What are the newest products available?\"\n" +
		"• \"Which items are currently offering the biggest discount?\"\n" +
		"• \"I'm looking for a stylish chair under 250.\""

	failureText = "Sorry, I couldn't look that up right now. Please try again later."
)

// Answerer answers one shopping query.
type Answerer interface {
	Chat(ctx context.Context, query string) (string, error)
}

// Bot relays Telegram messages to the agent. Each message is answered on
// its own, without earlier messages as context.
type Bot struct {
	api   *tgbotapi.BotAPI
	agent Answerer
	log   *logger.Logger
}

// New authorizes against the Bot API with token.
func New(token string, agent Answerer, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}
	log = log.With("component", "telegram")
	log.Info("authorized", "account", api.Self.UserName)
	return &Bot{api: api, agent: agent, log: log}, nil
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	reply := Reply(ctx, b.agent, b.log, message)

	msg := tgbotapi.NewMessage(message.Chat.ID, reply)
	msg.ReplyToMessageID = message.MessageID

	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("sending message failed", "chat_id", message.Chat.ID, "error", err)
	}
}

// Reply computes the bot's answer to message.
func Reply(ctx context.Context, agent Answerer, log *logger.Logger, message *tgbotapi.Message) string {
	user := ""
	if message.From != nil {
		user = message.From.UserName
	}
	log.Info("message", "user", user, "text", message.Text)

	switch message.Command() {
	case "start":
		return startText

	case "help":
		return helpText

	case "":
		if strings.TrimSpace(message.Text) == "" {
			return helpText
		}
		response, err := agent.Chat(ctx, message.Text)
		if err != nil {
			log.Error("agent failed", "user", user, "error", err)
			return failureText
		}
		return response

	default:
		return "Unknown command. Try /help"
	}
}
