package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/hideandseek/internal/common/clock"
	"github.com/KirkDiggler/hideandseek/internal/common/uuid"
	"github.com/KirkDiggler/hideandseek/internal/config"
	"github.com/KirkDiggler/hideandseek/internal/dice"
	"github.com/KirkDiggler/hideandseek/internal/handlers/discord"
	"github.com/KirkDiggler/hideandseek/internal/handlers/ws"
	"github.com/KirkDiggler/hideandseek/internal/repositories/archive"
	"github.com/KirkDiggler/hideandseek/internal/repositories/room"
	"github.com/KirkDiggler/hideandseek/internal/services/messaging"
	"github.com/KirkDiggler/hideandseek/internal/services/reporting"
	"github.com/KirkDiggler/hideandseek/internal/services/session"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// Initialize the report archive
	var archiveRepo archive.Repository = archive.NewNoop()
	if cfg.ArchiveEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		archiveRepo, err = archive.NewRedis(&archive.Config{
			RedisClient: redisClient,
			TTL:         cfg.ArchiveTTL,
		})
		if err != nil {
			log.Fatalf("Failed to create archive repository: %v", err)
		}
		log.Printf("Archiving reports to redis at %s", cfg.RedisAddr)
	}

	// Initialize the optional Discord announcer
	var announcer reporting.Announcer
	if cfg.DiscordEnabled() {
		discordAnnouncer, err := discord.New(&discord.Config{
			Token:     cfg.DiscordToken,
			ChannelID: cfg.DiscordChannelID,
		})
		if err != nil {
			log.Fatalf("Failed to create Discord announcer: %v", err)
		}
		announcer = discordAnnouncer
		log.Printf("Announcing reports to Discord channel %s", cfg.DiscordChannelID)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	reportingSvc, err := reporting.New(&reporting.Config{
		ArchiveRepo: archiveRepo,
		Messaging:   messagingSvc,
		Announcer:   announcer,
		Logger:      log.New(os.Stderr, "[reporting] ", log.LstdFlags),
	})
	if err != nil {
		log.Fatalf("Failed to create reporting service: %v", err)
	}

	// Initialize the live game
	roomRepo := room.NewMemory(&room.Config{Seed: cfg.DiceSeed})
	uuidGenerator := uuid.New()

	sessionSvc, err := session.New(&session.Config{
		RoomRepo:      roomRepo,
		DiceRoller:    dice.New(&dice.Config{Seed: cfg.DiceSeed}),
		Clock:         clock.New(),
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	hub, err := ws.New(&ws.Config{
		Session:       sessionSvc,
		RoomRepo:      roomRepo,
		UUIDGenerator: uuidGenerator,
		Reporter:      reportingSvc,
		Archive:       archiveRepo,
		Logger:        log.New(os.Stderr, "[ws] ", log.LstdFlags),
		SendBuffer:    cfg.SendBuffer,
	})
	if err != nil {
		log.Fatalf("Failed to create hub: %v", err)
	}

	go reportingSvc.Run(ctx)
	go hub.Run(ctx)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           hub.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error stopping server: %v", err)
	}

	log.Println("Server has been shut down")
}
