package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/MediaLibrary/internal/core/ports"
	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/GoArmGo/MediaLibrary/internal/messaging/payloads"
	"github.com/GoArmGo/MediaLibrary/internal/usecase"
)

// runWorker запускает потребителя очереди зачистки и повторяет
// каскадные удаления библиотек, не прошедшие с первого раза
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	cleanupUseCase usecase.LibraryUseCase,
	cleanupConsumer ports.LibraryCleanupConsumer,
) error {
	logger.Info("worker started, waiting for cleanup tasks")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	// Обработчик задач: повторно прогоняет каскадное удаление.
	// Уже удалённая библиотека — терминальный успех, а не ошибка.
	messageHandler := func(ctx context.Context, payload payloads.LibraryCleanupPayload) error {
		logger.Info("retrying library cascade delete", "library_id", payload.LibraryID, "attempt", payload.Attempt)

		if err := cleanupUseCase.DeleteLibrary(ctx, payload.LibraryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Info("library already deleted", "library_id", payload.LibraryID)
				return nil
			}
			logger.Error("cleanup retry failed", "library_id", payload.LibraryID, "error", err)
			return err
		}

		logger.Info("cleanup retry succeeded", "library_id", payload.LibraryID)
		return nil
	}

	if err := cleanupConsumer.StartConsumingLibraryCleanup(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя очереди: %w", err)
	}

	<-ctx.Done()

	logger.Info("worker stopping")
	cancelWorker()
	return nil
}
