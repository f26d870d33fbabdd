// Package main is the entrypoint for the Football News landing server:
// the static site plus the contact and subscribe relays.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/footballnews/landing/internal/config"
	"github.com/footballnews/landing/internal/handler"
	"github.com/footballnews/landing/internal/logging"
	"github.com/footballnews/landing/internal/metrics"
	"github.com/footballnews/landing/internal/server"
	"github.com/footballnews/landing/internal/upstream"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	}, os.Stdout)
	if err != nil {
		slog.Error("failed to initialise logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	logger.Info("configuration loaded", "config", cfg)
	if !cfg.ContactEnabled() {
		logger.Warn("WEB3FORMS_ACCESS_KEY not set; contact relay will answer 500")
	}
	if !cfg.SubscribeEnabled() {
		logger.Warn("BREVO_API_KEY not set; subscribe relay will answer 500")
	}

	// Upstream clients share one transport.
	httpClient := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	contactClient := upstream.NewWeb3FormsClient(httpClient, cfg.Web3FormsURL, cfg.Web3FormsAccessKey, cfg.ContactSubject)
	brevoClient := upstream.NewBrevoClient(httpClient, cfg.BrevoURL, cfg.BrevoAPIKey, cfg.BrevoListID)

	recorder := metrics.NewInMemory()

	router := server.NewRouter(server.Routes{
		Contact:   handler.NewContactHandler(contactClient, recorder, logger),
		Subscribe: handler.NewSubscribeHandler(brevoClient, recorder, logger),
		Health: handler.NewHealthHandler(map[string]handler.RelayStatus{
			metrics.RelayContact:   contactClient,
			metrics.RelaySubscribe: brevoClient,
		}),
		Metrics:       handler.NewMetricsHandler(recorder),
		Logger:        logger,
		IsDevelopment: cfg.IsDevelopment(),
		MaxBodySize:   cfg.MaxRequestBodySize,
		StaticDir:     cfg.StaticDir,
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// Components stop in reverse order; the log file closes last.
	srv.OnShutdown("log file", func(ctx context.Context) error {
		return logCloser.Close()
	})
	srv.OnShutdown("upstream connections", func(ctx context.Context) error {
		httpClient.CloseIdleConnections()
		return nil
	})

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
