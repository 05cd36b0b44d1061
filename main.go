package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopping-agent/agent"
	"shopping-agent/catalog"
	"shopping-agent/config"
	"shopping-agent/console"
	"shopping-agent/logger"
	"shopping-agent/telegram"
	"shopping-agent/tools"
)

var shoppingQueries = []string{
	"Show me all available products from the store.",
	"What are the newest products available?",
	"Which items are currently offering the biggest discount?",
	"Suggest something elegant for home decor.",
	"Do you have any cozy or comfy furniture recommendations?",
	"Can you show me rustic or vintage pieces for my living room?",
	"I'm looking for a stylish chair under 250. What do you recommend?",
	"Which items are great as birthday gifts?",
}

func main() {
	useTelegram := flag.Bool("telegram", false, "answer Telegram messages instead of running the sample queries")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logr := logger.NewLogger(cfg.LogLevel)

	// Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logr.Info("shutting down")
		cancel()
	}()

	fetcher := catalog.NewFetcher(cfg.CatalogURL, cfg.CatalogTimeout)

	registry := tools.NewRegistry()
	registry.Register(tools.NewProductsTool(fetcher, logr))

	shoppingAgent := agent.New(agent.Options{
		BaseURL: cfg.ModelBaseURL,
		Model:   cfg.ModelName,
		APIKey:  cfg.GeminiAPIKey,
		Timeout: cfg.AgentTimeout,
	}, registry, logr)

	logr.Info("agent ready", "model", cfg.ModelName, "catalog", fetcher.URL(), "tools", len(registry.All()))

	if *useTelegram {
		if cfg.TelegramToken == "" {
			log.Fatal("TELEGRAM_BOT_TOKEN environment variable is required")
		}
		bot, err := telegram.New(cfg.TelegramToken, shoppingAgent, logr)
		if err != nil {
			log.Fatal(err)
		}
		if err := bot.Run(ctx); err != nil {
			log.Fatal(err)
		}
		return
	}

	_, noColor := os.LookupEnv("NO_COLOR")
	printer := console.NewPrinter(os.Stdout, cfg.ConsoleWidth, !noColor)
	if failures := console.RunQueries(ctx, shoppingAgent, printer, shoppingQueries); failures > 0 {
		logr.Warn("some queries failed", "failed", failures, "total", len(shoppingQueries))
		cancel()
		os.Exit(1)
	}
}
