package ports

import (
	"context"

	"github.com/GoArmGo/MediaLibrary/internal/messaging/payloads"
)

// LibraryCleanupPublisher определяет методы для публикации задач на повторную зачистку
// Этот интерфейс будет использоваться сервером при сбое каскадного удаления
type LibraryCleanupPublisher interface {
	PublishLibraryCleanup(ctx context.Context, payload payloads.LibraryCleanupPayload) error
}

// LibraryCleanupConsumer определяет методы для потребления задач зачистки
// будет использоваться воркером для получения задач из очереди
type LibraryCleanupConsumer interface {
	// StartConsumingLibraryCleanup начинает прослушивание очереди задач зачистки
	// принимает функцию-обработчик, которая будет вызываться для каждого полученного сообщения
	StartConsumingLibraryCleanup(ctx context.Context, handler func(context.Context, payloads.LibraryCleanupPayload) error) error
}
