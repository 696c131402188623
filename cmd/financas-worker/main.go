package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"financas/internal/amqp"
	"financas/internal/backend"
	"financas/internal/cli"
	"financas/internal/services"
	"financas/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting financas-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exporter, err := backend.NewSummaryExporter(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize summary exporter", "error", err)
		os.Exit(1)
	}
	if exporter.Cleanup != nil {
		defer func() {
			if err := exporter.Cleanup(); err != nil {
				logger.Error("Exporter cleanup failed", "error", err)
			}
		}()
	}

	summaryService := services.NewSummaryService(repo, repo, repo, repo, cfg.DefaultVariableCeiling)
	recomputeWorker := worker.NewRecomputeWorker(summaryService, repo, exporter.Exporter)

	g, ctx := errgroup.WithContext(ctx)

	// Consume recompute messages, reconnecting on broker failures.
	g.Go(func() error {
		err := amqp.ConsumeRecomputeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, func(msg *amqp.RecomputeMessage) error {
			return recomputeWorker.HandleMessage(ctx, msg)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	// Periodic catch-up: refresh the current month for every active user so
	// lost messages only delay a refresh.
	g.Go(func() error {
		err := recomputeWorker.RunPeriodic(ctx, cfg.RefreshInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	logger.Info("Worker running",
		"queue", cfg.AMQPQueue,
		"refresh_interval", cfg.RefreshInterval)

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
