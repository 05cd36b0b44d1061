package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"shopping-agent/logger"
)

type fakeAgent struct {
	answer string
	err    error
	asked  []string
}

func (f *fakeAgent) Chat(_ context.Context, q string) (string, error) {
	f.asked = append(f.asked, q)
	return f.answer, f.err
}

func command(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}
}

func TestReplyCommands(t *testing.T) {
	agent := &fakeAgent{answer: "unused"}
	log := logger.Discard()

	assert.Equal(t, startText, Reply(context.Background(), agent, log, command("/start")))
	assert.Equal(t, helpText, Reply(context.Background(), agent, log, command("/help")))
	assert.Equal(t, "Unknown command. Try /help", Reply(context.Background(), agent, log, command("/auth")))
	assert.Empty(t, agent.asked)
}

func TestReplyForwardsQueries(t *testing.T) {
	agent := &fakeAgent{answer: "The Lolito sofa is new."}
	msg := &tgbotapi.Message{
		Text: "What are the newest products available?",
		From: &tgbotapi.User{UserName: "shopper"},
	}

	got := Reply(context.Background(), agent, logger.Discard(), msg)

	assert.Equal(t, "The Lolito sofa is new.", got)
	assert.Equal(t, []string{"What are the newest products available?"}, agent.asked)
}

func TestReplyHidesAgentErrors(t *testing.T) {
	agent := &fakeAgent{err: errors.New("calling model: 429")}
	msg := &tgbotapi.Message{Text: "gift ideas?"}

	assert.Equal(t, failureText, Reply(context.Background(), agent, logger.Discard(), msg))
}

func TestReplyAnswersEmptyTextWithHelp(t *testing.T) {
	agent := &fakeAgent{answer: "unused"}

	for _, text := range []string{"", "   \n"} {
		got := Reply(context.Background(), agent, logger.Discard(), &tgbotapi.Message{Text: text})
		assert.Equal(t, helpText, got)
	}
	assert.Empty(t, agent.asked)
}
