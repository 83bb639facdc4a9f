package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"token-pulse-go/internal/api"
	"token-pulse-go/internal/api/stream"
	"token-pulse-go/internal/api/usecase"
	"token-pulse-go/internal/config"
	"token-pulse-go/internal/dashboard"
	grpcserver "token-pulse-go/internal/grpc"
	"token-pulse-go/internal/infrastructure/repository"
	"token-pulse-go/internal/kafka"
	marketengine "token-pulse-go/internal/market-engine"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

const (
	topicRetryDelay = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig("config/config.yml")
	if err != nil {
		logger.Fatalf("Error loading configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Unknown log level %q, keeping %s", cfg.Log.Level, logger.GetLevel())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineOpts := []marketengine.Option{
		marketengine.WithUpdateInterval(cfg.Engine.UpdateInterval()),
		marketengine.WithFlagWindow(cfg.Engine.FlagWindow()),
		marketengine.WithLogger(logger),
	}

	var publisher *kafka.TickPublisher
	if cfg.Kafka.Enabled {
		if !ensureTopic(ctx, cfg.Kafka, logger) {
			return
		}
		publisher = kafka.NewTickPublisher(cfg.Kafka, logger)
		engineOpts = append(engineOpts, marketengine.WithTickSink(publisher))
		logger.WithField("topic", cfg.Kafka.Topic).Info("Publishing ticks to Kafka")
	}

	engine := marketengine.New(engineOpts...)
	board := dashboard.New(engine,
		dashboard.WithTokensPerCategory(cfg.Catalog.TokensPerCategory),
		dashboard.WithLoadDelay(cfg.Catalog.LoadDelay()),
		dashboard.WithLogger(logger),
	)

	// Reads answer 503 until the catalog is loaded.
	go func() {
		if err := board.Load(ctx); err != nil {
			logger.WithError(err).Warn("Catalog load aborted")
			return
		}
		if cfg.Engine.AutoStart {
			if err := board.StartEngine(0); err != nil {
				logger.WithError(err).Error("Failed to start price simulation")
			}
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	uc := usecase.NewUsecase(board, repository.NewCsvTokenWriter())
	hub := stream.NewHub(engine, logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: api.NewRouter(uc, hub, cfg.HTTP.Timeout(), logger),
	}

	go func() {
		logger.Infof("HTTP Server listening on %s", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	listener, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		logger.Fatalf("Failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer()
	grpcserver.RegisterPulseServiceServer(grpcServer, &grpcserver.PulseServer{Board: board, Logger: logger})
	reflection.Register(grpcServer)

	go func() {
		logger.Infof("gRPC Server listening on %s", cfg.GRPC.Addr)
		if err := grpcServer.Serve(listener); err != nil {
			logger.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()

	logger.Info("Press Ctrl+C to stop")
	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HTTP shutdown incomplete")
	}
	stopGRPC(shutdownCtx, grpcServer)
	engine.Stop()

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close Kafka writer")
		}
	}
	logger.Info("Stopped")
}

// ensureTopic retries until the broker accepts the topic. It reports false
// when ctx ends first.
func ensureTopic(ctx context.Context, cfg config.KafkaConfig, logger logrus.FieldLogger) bool {
	for {
		err := kafka.EnsureTopic(cfg, logger)
		if err == nil {
			return true
		}
		logger.WithError(err).Warnf("Could not ensure Kafka topic exists, retrying in %s", topicRetryDelay)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(topicRetryDelay):
		}
	}
}

// stopGRPC drains in-flight calls but cuts open price streams once ctx ends.
func stopGRPC(ctx context.Context, server *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		server.Stop()
	}
}
