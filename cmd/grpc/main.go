package main

import (
	"catalog/infra/grpc"
	"catalog/infra/rabbitmq"
	"catalog/infra/storage"
	"catalog/pkg/config"
	"catalog/pkg/events"
	"catalog/pkg/logger"
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	appConfig := config.Read()
	log := logger.Init(appConfig.AppEnv)
	defer log.Sync()

	zap.L().Info("Catalog gRPC Service starting...")

	repository, err := storage.NewRepository(context.Background(), appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open storage", zap.Error(err))
	}
	defer repository.Close()

	var publisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		rabbitPublisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName, events.ItemExchange)
		if err != nil {
			zap.L().Fatal("Failed to connect event publisher", zap.Error(err))
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	}

	grpcServer, err := grpc.NewServer(appConfig)
	if err != nil {
		zap.L().Fatal("failed to create grpc server", zap.Error(err))
	}

	grpc.RegisterItemServiceServer(grpcServer.GetGRPCServer(), grpc.NewItemServiceServer(repository, publisher))

	zap.L().Info("starting gRPC server...", zap.String("port", appConfig.GRPCPort))
	go func() {
		if err := grpcServer.Start(); err != nil {
			zap.L().Error("failed to start grpc server", zap.Error(err))
			os.Exit(1)
		}
	}()

	gracefulShutdown(grpcServer)
}

func gracefulShutdown(grpcServer *grpc.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	grpcServer.GracefulStop()

	zap.L().Info("Server gracefully stopped")
}
