package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"enquetebot/internal/adapters/gateway/discord"
	"enquetebot/internal/adapters/handler/http"
	"enquetebot/internal/adapters/repository/mongodb"
	"enquetebot/internal/adapters/trigger/keyboard"
	"enquetebot/internal/config"
	"enquetebot/internal/core/services"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	if err := client.Ping(connectCtx, nil); err != nil {
		logger.Error("failed to ping mongodb", "error", err)
		os.Exit(1)
	}

	voteRepo, err := mongodb.NewVoteRepository(connectCtx, client.Database(cfg.MongoDB))
	if err != nil {
		logger.Error("failed to prepare vote repository", "error", err)
		os.Exit(1)
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		logger.Error("failed to build discord session", "error", err)
		os.Exit(1)
	}

	gateway := discord.NewGateway(session)
	polls := services.NewPollService(voteRepo, gateway, services.PollConfig{
		Question:          cfg.Question,
		Options:           cfg.Options,
		Expiry:            cfg.PollExpiry,
		BroadcastChannels: cfg.BroadcastChannels,
	}, logger)
	dispatcher := services.NewDispatcher(polls, logger)
	discord.NewEvents(session, dispatcher, cfg.CommandPrefix, logger).Register()

	if err := session.Open(); err != nil {
		logger.Error("failed to connect to discord", "error", err)
		os.Exit(1)
	}
	defer session.Close()
	botID := ""
	if session.State != nil && session.State.User != nil {
		botID = session.State.User.ID
	}
	logger.Info("bot connected", "user_id", botID)

	trigger := keyboard.New(cfg.TriggerKey, logger)
	if trigger.Available() {
		go trigger.Run(ctx, func() {
			polls.Broadcast(context.Background())
		})
	} else {
		logger.Warn("hotkey trigger unavailable, feature disabled")
	}

	server := &stdhttp.Server{
		Addr:    cfg.OpsAddr,
		Handler: http.NewHandler(http.NewPollHandler(polls)),
	}
	go func() {
		logger.Info("ops server listening", "addr", cfg.OpsAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("ops server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown failed", "error", err)
	}
}
