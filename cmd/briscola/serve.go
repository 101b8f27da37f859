package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/19506jk/briscola-server/internal/announcer"
	"github.com/19506jk/briscola-server/internal/common/clock"
	"github.com/19506jk/briscola-server/internal/common/logger"
	"github.com/19506jk/briscola-server/internal/common/uuid"
	"github.com/19506jk/briscola-server/internal/config"
	"github.com/19506jk/briscola-server/internal/handlers/discord"
	"github.com/19506jk/briscola-server/internal/handlers/socket"
	"github.com/19506jk/briscola-server/internal/handlers/web"
	resultRepo "github.com/19506jk/briscola-server/internal/repositories/result"
	"github.com/19506jk/briscola-server/internal/services/game"
	"github.com/19506jk/briscola-server/internal/services/messaging"
	"github.com/19506jk/briscola-server/internal/shuffle"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Seed: cfg.ShuffleSeed,
	})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	var repo resultRepo.Repository
	if cfg.PersistenceEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		repo, err = resultRepo.NewRedis(&resultRepo.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			return fmt.Errorf("failed to create result repository: %w", err)
		}
		log.Info("result history enabled", zap.String("redis_addr", cfg.RedisAddr))
	}

	// Results go to the log unless a Discord channel is configured
	var ann announcer.Announcer = announcer.NewLog(log)
	var session *discordgo.Session
	if cfg.AnnouncerEnabled() {
		session, err = discord.NewSession(cfg.DiscordToken)
		if err != nil {
			return err
		}
		ann, err = discord.NewAnnouncer(&discord.AnnouncerConfig{
			Sender:           session,
			ChannelID:        cfg.DiscordChannelID,
			MessagingService: messagingSvc,
			Logger:           log,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord announcer: %w", err)
		}
	}

	gameSvc, err := game.New(&game.Config{
		Catalog:       cat,
		StrictRules:   cfg.StrictRules,
		ResultRepo:    repo,
		Shuffler:      shuffle.New(&shuffle.Config{Seed: cfg.ShuffleSeed}),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
		Announcer:     ann,
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}

	if session != nil {
		bot, err := discord.New(&discord.Config{
			Session:       session,
			ApplicationID: cfg.DiscordApplicationID,
			GuildID:       cfg.DiscordGuildID,
			GameService:   gameSvc,
			Logger:        log,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}
		if err := bot.Start(); err != nil {
			return fmt.Errorf("failed to start Discord bot: %w", err)
		}
		defer func() {
			if err := bot.Stop(); err != nil {
				log.Warn("failed to stop Discord bot", zap.Error(err))
			}
		}()
	}

	hub, err := socket.NewHub(&socket.Config{
		GameService:      gameSvc,
		MessagingService: messagingSvc,
		OriginAllowlist:  cfg.OriginAllowlist,
		Logger:           log,
	})
	if err != nil {
		return fmt.Errorf("failed to create socket hub: %w", err)
	}

	handler, err := web.New(&web.Config{
		GameService:     gameSvc,
		Socket:          hub,
		OriginAllowlist: cfg.OriginAllowlist,
		Logger:          log,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.HTTPAddr), zap.Bool("strict_rules", cfg.StrictRules))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by Shutdown
	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
