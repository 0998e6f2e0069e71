package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/MediaLibrary/internal/config"
	"github.com/GoArmGo/MediaLibrary/internal/core/ports"
	"github.com/GoArmGo/MediaLibrary/internal/database/client"
	"github.com/GoArmGo/MediaLibrary/internal/rabbitmq"
	"github.com/GoArmGo/MediaLibrary/internal/usecase"
)

type App struct {
	Config          *config.Config
	logger          *slog.Logger
	dbClient        *client.Client
	queueClient     *rabbitmq.Client
	fileUseCase     usecase.FileUseCase
	libraryUseCase  usecase.LibraryUseCase
	cleanupUseCase  usecase.LibraryUseCase
	userUseCase     usecase.UserUseCase
	commentUseCase  usecase.CommentUseCase
	cleanupConsumer ports.LibraryCleanupConsumer
	uploadLimiter   chan struct{}
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	queueClient *rabbitmq.Client,
	fileUseCase usecase.FileUseCase,
	libraryUseCase usecase.LibraryUseCase,
	cleanupUseCase usecase.LibraryUseCase,
	userUseCase usecase.UserUseCase,
	commentUseCase usecase.CommentUseCase,
	cleanupConsumer ports.LibraryCleanupConsumer,
	uploadLimiter chan struct{},
) *App {
	return &App{
		Config:          cfg,
		logger:          logger,
		dbClient:        dbClient,
		queueClient:     queueClient,
		fileUseCase:     fileUseCase,
		libraryUseCase:  libraryUseCase,
		cleanupUseCase:  cleanupUseCase,
		userUseCase:     userUseCase,
		commentUseCase:  commentUseCase,
		cleanupConsumer: cleanupConsumer,
		uploadLimiter:   uploadLimiter,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode *string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application starting", "mode", *mode)

	var err error

	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.fileUseCase, a.libraryUseCase, a.userUseCase, a.commentUseCase, a.uploadLimiter)

	case "worker":
		err = runWorker(ctx, a.logger, a.cleanupUseCase, a.cleanupConsumer)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	if err != nil {
		return err
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия очереди: %w", err)
		}
	}
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}
	return nil
}
