package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"saleor-tma-bot/api/routes"
	"saleor-tma-bot/internal/catalog"
	"saleor-tma-bot/internal/dispatcher"
	"saleor-tma-bot/internal/orders"
	"saleor-tma-bot/internal/saleor"
	"saleor-tma-bot/internal/telegram"
	"saleor-tma-bot/pkg/config"
	"saleor-tma-bot/pkg/logger"
	"saleor-tma-bot/pkg/metrics"
	"saleor-tma-bot/pkg/redis"
)

const serviceName = "tma-bot"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogOutput(),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var snapshots *catalog.SnapshotStore
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "redis unavailable, catalog snapshots disabled", err)
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logg.Error(context.Background(), "error closing redis", err)
				}
			}()
			snapshots = catalog.NewSnapshotStore(redisClient, cfg.Redis.SnapshotTTL)
		}
	}

	gateway := saleor.NewClient(cfg.Saleor, logg, m)
	var source catalog.Source
	if gateway.Configured() {
		source = gateway
	}
	resolver := catalog.NewResolver(catalog.ResolverParams{
		Fallback:     catalog.Fallback(),
		Source:       source,
		Snapshots:    snapshots,
		ProductLimit: cfg.Saleor.ProductLimit,
		Logger:       logg,
		Metrics:      m,
	})
	if err := resolver.Refresh(ctx); err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "catalog refresh failed, serving fallback")
	}

	bot, err := telegram.NewBotAPI(cfg.Telegram.BotToken, &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		logg.Error(ctx, "failed to authorize telegram bot", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "bot_username", bot.Self.UserName), "telegram bot authorized")

	if cfg.Server.WebhookURL != "" {
		if err := telegram.RegisterWebhook(bot, cfg.Server.WebhookURL); err != nil {
			logg.Error(ctx, "failed to register webhook", err)
		} else {
			logg.Info(logg.WithField(ctx, "webhook_url", cfg.Server.WebhookURL), "telegram webhook registered")
		}
	}
	if cfg.Telegram.AdminChatID != 0 {
		logg.Info(logg.WithChatID(ctx, cfg.Telegram.AdminChatID), "admin order copies enabled")
	}

	d := dispatcher.New(dispatcher.Params{
		Notifier:    telegram.NewNotifier(bot, logg, m),
		Formatter:   orders.NewFormatter(resolver),
		BaseURL:     cfg.Server.BaseURL,
		WebviewURL:  cfg.Server.ResourceBaseURL,
		AdminChatID: cfg.Telegram.AdminChatID,
		Logger:      logg,
		Metrics:     m,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           routes.NewRouter(cfg, logg, m, reg, d, gateway, resolver),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"env":  cfg.App.Env,
			"addr": server.Addr,
		}), "starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logg.Error(ctx, "http server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "http server shutdown failed", err)
	}
}
