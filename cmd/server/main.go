package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecommerce-api/internal/config"
	"ecommerce-api/internal/database"
	handler_grpc "ecommerce-api/internal/handler/grpc"
	handler "ecommerce-api/internal/handler/http"
	"ecommerce-api/internal/logger"
	"ecommerce-api/internal/repository"
	"ecommerce-api/internal/service"
	"ecommerce-api/internal/tracer"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	globalCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Error(globalCtx, "Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.SetRemote(cfg.RemoteLogHttpURI, cfg.AppName)

	shutdownTracer, err := tracer.Init(globalCtx, cfg)
	if err != nil {
		logger.Warn(globalCtx, "Tracing disabled", slog.String("error", err.Error()))
	}

	db, err := database.Connect(globalCtx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		os.Exit(1)
	}

	// Wiring
	productRepo := repository.NewProductRepository(db.Database)
	productService := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productService)

	healthService := service.NewHealthService(db.Client)
	healthHandler := handler.NewHealthHandler(healthService)

	httpServer := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      handler.NewRouter(productHandler, healthHandler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	var grpcServer *grpc.Server
	if cfg.GrpcPort != "" {
		grpcServer = handler_grpc.NewServer(handler_grpc.NewHealthGRPCHandler(healthService))
	}

	g, gCtx := errgroup.WithContext(globalCtx)

	g.Go(func() error {
		logger.Info(gCtx, "HTTP server running", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if grpcServer != nil {
		g.Go(func() error {
			lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
			if err != nil {
				return err
			}
			logger.Info(gCtx, "gRPC server running", slog.String("addr", lis.Addr().String()))
			return grpcServer.Serve(lis)
		})
	}

	if cfg.SeedSampleData {
		seeded := seedInBackground(gCtx, productService)
		g.Go(func() error {
			<-seeded
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info(context.Background(), "Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if grpcServer != nil {
			grpcServer.GracefulStop()
		}
		return httpServer.Shutdown(shutdownCtx)
	})

	exitCode := 0
	if err := g.Wait(); err != nil {
		logger.Error(context.Background(), "Server failed", slog.String("error", err.Error()))
		exitCode = 1
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	if err := db.Close(closeCtx); err != nil {
		logger.Error(closeCtx, "Failed to disconnect MongoDB", slog.String("error", err.Error()))
	}
	shutdownTracer(closeCtx)
	closeCancel()

	os.Exit(exitCode)
}
