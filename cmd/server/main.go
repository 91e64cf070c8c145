package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcadapter "github.com/simaogato/wealthsim/internal/adapter/grpc"
	"github.com/simaogato/wealthsim/internal/adapter/chart"
	httpadapter "github.com/simaogato/wealthsim/internal/adapter/http"
	"github.com/simaogato/wealthsim/internal/adapter/repository"
	"github.com/simaogato/wealthsim/internal/config"
	"github.com/simaogato/wealthsim/internal/logging"
	"github.com/simaogato/wealthsim/internal/usecase/allocation"
	"github.com/simaogato/wealthsim/internal/usecase/comparison"
	"github.com/simaogato/wealthsim/internal/usecase/dashboard"
	"github.com/simaogato/wealthsim/internal/usecase/seeder"
	"github.com/simaogato/wealthsim/internal/usecase/simulation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 2. Setup Database
	store, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("database connected", "driver", cfg.Database.Driver)

	// 3. Initialize Services (Use Cases)
	simulationService := simulation.NewSimulationService(store.Simulations)
	allocationService := allocation.NewAllocationService(store.Simulations, store.Allocations, store.History)
	comparisonService := comparison.NewComparisonService(store.Simulations, cfg.Compare.MaxConcurrency, logger)
	summaryService := dashboard.NewSummaryService(store.Simulations, store.Allocations)

	if cfg.SeedDemo {
		if err := seeder.NewDemoSeeder(store.Simulations, store.Allocations).Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		logger.Info("demo simulations seeded")
	}

	// 4. Build HTTP API
	api := httpadapter.NewServer(
		simulationService,
		allocationService,
		comparisonService,
		summaryService,
		chart.NewRenderer(chart.DefaultCacheTTL),
		store.Pinger,
		httpadapter.Options{
			ExposeInternalErrors: cfg.IsDevelopment(),
			CORSOrigins:          cfg.Server.CORSOrigins,
			Logger:               logger,
		},
	)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	// 5. Start gRPC health server
	var grpcServer *grpcadapter.Server
	if cfg.Server.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", cfg.Server.GRPCAddr, err)
		}
		grpcServer = grpcadapter.NewServer(store.Pinger, logger)
		go grpcServer.Watch(ctx, cfg.Server.HealthInterval)
		go func() {
			logger.Info("gRPC server listening", "addr", cfg.Server.GRPCAddr)
			if err := grpcServer.Serve(lis); err != nil {
				errCh <- fmt.Errorf("gRPC server failed: %w", err)
			}
		}()
	}

	// 6. Start HTTP Server
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	// Graceful shutdown
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, shutting down gracefully")
	case err := <-errCh:
		logger.Error("server error, shutting down", "error", err)
		shutdown(httpServer, grpcServer, cfg.Server.ShutdownTimeout, logger)
		return err
	}

	shutdown(httpServer, grpcServer, cfg.Server.ShutdownTimeout, logger)
	return nil
}

// shutdown drains the HTTP server within timeout and stops gRPC
func shutdown(httpServer *http.Server, grpcServer *grpcadapter.Server, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped")
	}

	if grpcServer != nil {
		grpcServer.GracefulStop()
		logger.Info("gRPC server stopped")
	}
}
