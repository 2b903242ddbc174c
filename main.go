package main

import (
	"catalog/app/item"
	"catalog/domain"
	"catalog/infra/rabbitmq"
	"catalog/infra/storage"
	"catalog/internal/middleware"
	"catalog/pkg/config"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"catalog/pkg/logger"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		// Bodies are JSON whatever the Content-Type says, so a payload is
		// never dropped silently.
		if body := c.Body(); len(body) > 0 {
			if err := c.App().Config().JSONDecoder(body, &req); err != nil {
				return writeError(c, httperror.BadRequest(
					"request.invalid_body",
					"Invalid body: "+err.Error(),
					nil,
				))
			}
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params: "+err.Error(),
				nil,
			))
		}

		res, err := handler.Handle(c.UserContext(), &req)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(res)
	}
}

func main() {
	appConfig := config.Read()
	log := logger.Init(appConfig.AppEnv)
	defer log.Sync()

	zap.L().Info("app starting...",
		zap.String("storageDriver", appConfig.StorageDriver),
		zap.String("port", appConfig.Port),
	)

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

	app := newApp(repository, publisher)

	go func() {
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app)
}

func newApp(repository item.Repository, publisher events.Publisher) *fiber.App {
	app := fiber.New(fiber.Config{
		IdleTimeout:           5 * time.Second,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		Concurrency:           256 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(middleware.NewCorrelationMiddleware())

	createItemHandler := item.NewCreateItemHandler(repository, publisher)
	getItemsHandler := item.NewGetItemsHandler(repository)
	updateItemHandler := item.NewUpdateItemHandler(repository, publisher)
	deleteItemHandler := item.NewDeleteItemHandler(repository, publisher)

	app.Get("/health", healthHandler(repository, publisher))
	app.Post("/items", handle[item.CreateItemRequest, item.CreateItemResponse](createItemHandler))
	app.Get("/items", handle[item.GetItemsRequest, []domain.Item](getItemsHandler))
	app.Put("/items/:id", handle[item.UpdateItemRequest, *domain.Item](updateItemHandler))
	app.Delete("/items/:id", handle[item.DeleteItemRequest, bool](deleteItemHandler))

	return app
}

type healthChecker interface {
	IsHealthy() bool
}

func healthHandler(repository item.Repository, publisher events.Publisher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := repository.Ping(c.UserContext()); err != nil {
			return writeError(c, httperror.ServiceUnavailable(
				"health.storage_unavailable",
				"Storage unavailable",
				nil,
			).WithCause(err))
		}

		if checker, ok := publisher.(healthChecker); ok && !checker.IsHealthy() {
			return writeError(c, httperror.ServiceUnavailable(
				"health.publisher_unavailable",
				"Event publisher unavailable",
				nil,
			))
		}

		return c.JSON(fiber.Map{"status": "ok"})
	}
}

func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

// writeError answers with the status of err and its message as plain text.
func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).SendString(httpErr.Message)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).SendString(fiberErr.Message)
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
}
