// Package main provides a CLI tool for creating the tax_rates table and seeding default rates.
package main

import (
	"context"
	"fmt"
	"os"

	"salesinvoice/internal/domain/taxes"
	"salesinvoice/internal/infrastructure/storage/postgres"
	"salesinvoice/internal/infrastructure/storage/postgres/taxrate_repo"
	"salesinvoice/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal(ctx, "DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		logger.Fatal(ctx, "failed to connect to database", "error", err)
	}
	defer pool.Close()

	logger.Info(ctx, "connected to database")

	if _, err := pool.Exec(ctx, taxrate_repo.Schema); err != nil {
		logger.Fatal(ctx, "failed to create schema", "error", err)
	}

	repo := taxrate_repo.NewRateRepo(postgres.NewTxManager(pool))
	for _, rate := range taxes.DefaultRates() {
		if err := repo.Upsert(ctx, &rate); err != nil {
			logger.Fatal(ctx, "failed to seed rate", "classification", rate.Classification, "error", err)
		}
		logger.Info(ctx, "rate seeded",
			"classification", rate.Classification,
			"rate", rate.Rate.String(),
			"description", rate.Description,
		)
	}

	rates, err := repo.List(ctx)
	if err != nil {
		logger.Fatal(ctx, "failed to list rates", "error", err)
	}
	logger.Info(ctx, "seeding completed successfully", "rates", len(rates))
}
