// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/config"
	httptransport "swiftlogix/internal/http"
	"swiftlogix/internal/infra"
	"swiftlogix/internal/logging"
	"swiftlogix/internal/modules/location"
	"swiftlogix/internal/modules/order"
	"swiftlogix/internal/modules/pricing"
	"swiftlogix/internal/modules/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Error("postgres init", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	resets := auth.NewRedisResetTokenStore(redisClient, cfg.Auth.ResetTTL)

	pricingSvc := pricing.NewService(pricing.Params{
		BaseFare:       cfg.Fare.BaseFare,
		PerKm:          cfg.Fare.PerKm,
		PerKg:          cfg.Fare.PerKg,
		CommissionRate: cfg.Fare.CommissionRate,
	})

	userStore := user.NewPGStore(dbPool)
	userSvc := user.NewService(userStore, tokens, resets)

	orderStore := order.NewPGStore(dbPool)
	orderSvc := order.NewService(orderStore, pricingSvc, userStore)

	locationStore := location.NewRedisStore(redisClient)
	locationSvc := location.NewService(locationStore)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Users:     userSvc,
		Orders:    orderSvc,
		Locations: locationSvc,
		Tokens:    tokens,
		Logger:    logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}
