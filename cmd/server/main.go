// Package main is the entry point for the sales invoice API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesinvoice/internal/domain/invoicing"
	"salesinvoice/internal/domain/taxes"
	v1 "salesinvoice/internal/infrastructure/http/v1"
	"salesinvoice/internal/infrastructure/http/v1/handlers"
	"salesinvoice/internal/infrastructure/storage/postgres"
	"salesinvoice/internal/infrastructure/storage/postgres/taxrate_repo"
	"salesinvoice/pkg/logger"
)

const version = "0.1.0"

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	policyName := getEnv("TAX_POLICY", "rates")
	logger.Info(ctx, "starting salesinvoice server", "tax_policy", policyName)

	// --- Tax policy ---
	var (
		policy invoicing.TaxPolicy
		db     handlers.Pinger
	)

	switch policyName {
	case "rates":
		policy = taxes.NewDefaultRatePolicy()

	case "rules":
		rules := taxes.DefaultRules()
		if path := getEnv("TAX_RULES_FILE", ""); path != "" {
			rules, err = loadRulesFile(path)
			if err != nil {
				logger.Fatal(ctx, "failed to load tax rules", "path", path, "error", err)
			}
		}
		policy, err = taxes.NewRulePolicy(rules)
		if err != nil {
			logger.Fatal(ctx, "failed to compile tax rules", "error", err)
		}
		logger.Info(ctx, "tax rules compiled", "count", len(rules))

	case "database":
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
		if err != nil {
			logger.Fatal(ctx, "failed to connect to database", "error", err)
		}
		defer pool.Close()
		pool.LogPoolStats(ctx)

		repo := taxrate_repo.NewRateRepo(postgres.NewTxManager(pool))
		policy = taxes.NewStoredRatePolicy(repo)
		db = pool

	default:
		logger.Fatal(ctx, "unknown TAX_POLICY", "value", policyName)
	}

	policy = taxes.WithTimeout(
		taxes.WithTracing(policy),
		getEnvDuration("TAX_POLICY_TIMEOUT", 2*time.Second),
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:     log,
		BookKeeper: invoicing.NewBookKeeper(invoicing.NewFactory()),
		TaxPolicy:  policy,
		PolicyName: policyName,
		DB:         db,
		Version:    version,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info(ctx, "server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server forced to shutdown", "error", err)
	}

	logger.Info(ctx, "server stopped")
}

func loadRulesFile(path string) ([]taxes.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return taxes.LoadRules(f)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
