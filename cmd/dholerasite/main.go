// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Dholera site server.
// It loads configuration, connects to the optional services, sets up
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dholerasite/internal/cms"
	"dholerasite/internal/config"
	"dholerasite/internal/database"
	"dholerasite/internal/flash"
	"dholerasite/internal/handlers"
	"dholerasite/internal/middleware"
	"dholerasite/internal/render"
	"dholerasite/internal/router"
	"dholerasite/internal/sections"
	"dholerasite/internal/storage"
	"dholerasite/internal/store"
	"dholerasite/internal/submit"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"api_origin", cfg.APIOrigin,
		"render_budget", cfg.RenderBudget,
	)

	// Compiled-in defaults must all decode; a broken one is a build defect.
	if err := sections.CheckDefaults(); err != nil {
		slog.Error("compiled-in section defaults are invalid", "error", err)
		os.Exit(1)
	}

	if cfg.APIOrigin == "" {
		slog.Warn("API_ORIGIN not set, every section renders its default")
	}
	if cfg.CaptchaSiteKey == "" {
		slog.Warn("CAPTCHA_SITE_KEY not set, form submissions are refused")
	}

	// Section providers share one content client.
	set := sections.NewSet(cms.New(cfg.APIOrigin, cfg.ContentFetchTimeout))

	// Connect to S3-compatible object storage (optional, the site works without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	var downloadStore handlers.DownloadStore
	if storageClient != nil {
		downloadStore = storageClient
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3BucketPublic,
			"private_bucket", cfg.S3BucketPrivate,
		)
	} else {
		slog.Warn("s3 storage not configured, downloads disabled")
	}

	renderer, err := render.New(storageClient.ResolveMedia)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Flash store and submission limits: Valkey when configured, process
	// memory otherwise. Ten form posts per minute per visitor. The inquiry
	// API sees every site's relayed submissions, so it gets a wider budget
	// of its own.
	secureCookies := !cfg.IsDev()
	var (
		flashBackend flash.Backend
		limits       router.Limits
	)
	if cfg.HasValkey() {
		valkeyClient, err := flash.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		flashBackend = flash.NewValkey(valkeyClient)
		limits.Forms = middleware.NewSharedRateLimiter(middleware.NewValkeyCounter(valkeyClient, "forms"), 10, time.Minute)
		limits.API = middleware.NewSharedRateLimiter(middleware.NewValkeyCounter(valkeyClient, "api"), 120, time.Minute)
	} else {
		slog.Warn("valkey not configured, form outcomes kept in memory")
		flashBackend = flash.NewMemory()
		limits.Forms = middleware.NewRateLimiter(10, time.Minute)
		limits.API = middleware.NewRateLimiter(120, time.Minute)
	}
	defer limits.Forms.Stop()
	defer limits.API.Stop()
	flashStore := flash.NewStore(flashBackend, secureCookies)

	// Inquiry API backed by PostgreSQL (optional).
	var inquiries *handlers.Inquiries
	if cfg.HasDatabase() {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		inquiries = handlers.NewInquiries(store.NewInquiryStore(db))
	} else {
		slog.Warn("postgres not configured, inquiry API disabled")
	}

	// Dual-sink form submission: email relay first, then the inquiry API.
	submitter := submit.New(
		submit.NewCaptchaVerifier(cfg.CaptchaSiteKey, cfg.CaptchaSecret, cfg.CaptchaVerifyURL),
		submit.NewRelay(cfg.RelayURL, cfg.RelayAccessKey, cfg.RelayFromName),
		submit.NewAPI(cfg.APIOrigin),
	)

	site := handlers.NewSite(set, renderer, flashStore, submitter, cfg.CaptchaSiteKey, cfg.RenderBudget)

	r := router.New(router.Handlers{
		Site:      site,
		Carousel:  handlers.NewCarousel(set, cfg.CarouselPeriod),
		Downloads: handlers.NewDownloads(downloadStore, 0, site.NotFound),
		Inquiries: inquiries,
	}, limits, secureCookies)

	// Request contexts derive from baseCtx so open carousel streams end on
	// shutdown.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return baseCtx },
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)
	cancelBase()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
