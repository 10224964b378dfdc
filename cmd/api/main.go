package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"eliterentals/internal/app"
	"eliterentals/internal/config"
	"eliterentals/internal/jobs"
	"eliterentals/internal/ratelimit"
	"eliterentals/internal/server"
	"eliterentals/internal/util"
	"eliterentals/pkg/auth"
	"eliterentals/pkg/notify"
	"eliterentals/pkg/storage"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	tokenTTL, err := config.ParseDurationOr(cfg.JWTTokenTTL, 0)
	if err != nil {
		log.Fatalf("failed to parse jwt token TTL: %v", err)
	}
	jobInterval, err := config.ParseDurationOr(cfg.JobInterval, jobs.DefaultInterval)
	if err != nil {
		log.Fatalf("failed to parse job interval: %v", err)
	}
	shutdownTimeout, err := config.ParseDurationOr(cfg.ShutdownTimeout, 15*time.Second)
	if err != nil {
		log.Fatalf("failed to parse shutdown timeout: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	var push notify.PushSender
	if cfg.FCMProjectID != "" && !cfg.DisablePushNotification {
		sender, err := notify.NewFCMSender(notify.FCMConfig{
			ProjectID:       cfg.FCMProjectID,
			CredentialsPath: cfg.FCMCredentialsPath,
		})
		if err != nil {
			log.Fatalf("failed to init fcm sender: %v", err)
		}
		push = sender
	}

	var email notify.EmailSender
	if cfg.SMTPHost != "" {
		sender, err := notify.NewSMTPSender(notify.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.SMTPFrom,
			FromName:  "Elite Rentals",
		})
		if err != nil {
			log.Fatalf("failed to init smtp sender: %v", err)
		}
		email = sender
	}

	var objects storage.ObjectStore
	if cfg.MinioEndpoint != "" {
		store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("failed to init object store: %v", err)
		}
		objects = store
	}

	appCore, err := app.New(app.Config{
		DatabaseURL: cfg.DatabaseURL,
		Push:        push,
		Email:       email,
		Objects:     objects,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	tokens, err := auth.NewTokenService(auth.TokenServiceConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      tokenTTL,
	})
	if err != nil {
		log.Fatalf("failed to init token service: %v", err)
	}

	var authLimiter *ratelimit.FixedWindowLimiter
	if cfg.AuthRateLimitPerMinute > 0 {
		authLimiter, err = ratelimit.NewRedisFixedWindowLimiter(
			cfg.RedisAddr, cfg.RedisPassword, "rentals:ratelimit",
			cfg.AuthRateLimitPerMinute, time.Minute)
		if err != nil {
			log.Fatalf("failed to init auth rate limiter: %v", err)
		}
	}

	trustedProxies, err := util.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("failed to parse trusted proxies: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:            appCore,
		Tokens:         tokens,
		AuthLimiter:    authLimiter,
		TrustedProxies: trustedProxies,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("api server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if !cfg.DisableBackgroundJobs {
		if cfg.RedisAddr == "" {
			log.Fatalf("background jobs require redisAddr (or set disableBackgroundJobs)")
		}
		locker := jobs.NewRedisLocker(cfg.RedisAddr, cfg.RedisPassword)
		runner := jobs.NewRunner(jobInterval, locker)
		store := appCore.Store()
		for _, job := range []jobs.Job{
			&jobs.LeaseExpiryJob{Store: store, Push: push, Email: email},
			&jobs.OverduePaymentJob{Store: store, Push: push, Email: email},
			&jobs.RentReminderJob{Store: store, Push: push, Email: email},
		} {
			job := job
			g.Go(func() error {
				return runner.Run(gctx, job)
			})
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", "err", err)
	}
	slog.Info("api server stopped")
}
