package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Savantrexs/microspend/internal/amqp"
	"github.com/Savantrexs/microspend/internal/cli"
	"github.com/Savantrexs/microspend/internal/core"
	"github.com/Savantrexs/microspend/internal/export"
	apphttp "github.com/Savantrexs/microspend/internal/http"
	applog "github.com/Savantrexs/microspend/internal/log"
	"github.com/Savantrexs/microspend/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	if err := repo.SeedDefaultCurrency(context.Background(), core.Currency(cfg.DefaultCurrency)); err != nil {
		logger.Error("Failed to seed default currency", applog.FieldError, err)
		os.Exit(1)
	}

	// Event feed is optional. A nil client turns publishing into a no-op.
	var events *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", applog.FieldError, err)
			os.Exit(1)
		}
		defer events.Close()
		logger.Info("AMQP event feed enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	store := services.NewStore(repo, eventPublisher(events))
	if err := store.Bootstrap(context.Background()); err != nil {
		logger.Error("Failed to load expenses from storage", applog.FieldError, err)
		os.Exit(1)
	}

	gate := &export.AdGate{
		PlayDuration:    cfg.AdPlayDuration,
		ConfirmDuration: cfg.AdConfirmDuration,
	}
	exporter := export.NewExporter(repo, gate, cfg.ExportDir)

	srv := apphttp.NewServer(":"+cfg.Port, store, exporter, repo)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := cli.ShutdownContext(logger.Logger)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting microspend server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
		defer shutdownCancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// eventPublisher keeps the typed nil out of the store's interface value.
func eventPublisher(c *amqp.Client) services.EventPublisher {
	if c == nil {
		return nil
	}
	return c
}
