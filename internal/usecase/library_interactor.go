package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/MediaLibrary/internal/core/ports"
	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/GoArmGo/MediaLibrary/internal/messaging/payloads"
	"github.com/google/uuid"
)

// libraryUseCase implements LibraryUseCase
type libraryUseCase struct {
	libraryStorage   ports.LibraryStorage
	fileStorage      ports.FileStorage
	assetStorage     ports.AssetStorage
	cleanupPublisher ports.LibraryCleanupPublisher
	logger           *slog.Logger
}

// NewLibraryUseCase создает новый экземпляр LibraryUseCase
func NewLibraryUseCase(
	libraryStorage ports.LibraryStorage,
	fileStorage ports.FileStorage,
	assetStorage ports.AssetStorage,
	cleanupPublisher ports.LibraryCleanupPublisher,
	logger *slog.Logger,
) LibraryUseCase {
	return &libraryUseCase{
		libraryStorage:   libraryStorage,
		fileStorage:      fileStorage,
		assetStorage:     assetStorage,
		cleanupPublisher: cleanupPublisher,
		logger:           logger,
	}
}

// CreateLibrary создает библиотеку. Имя обязательно и уникально без учёта регистра.
func (uc *libraryUseCase) CreateLibrary(ctx context.Context, library *domain.Library) (*domain.Library, error) {
	library.Name = strings.TrimSpace(library.Name)
	if library.Name == "" {
		return nil, fmt.Errorf("%w: library name is required", domain.ErrInvalidArgument)
	}

	if err := uc.libraryStorage.SaveLibrary(ctx, library); err != nil {
		return nil, fmt.Errorf("usecase: создание библиотеки: %w", err)
	}
	return library, nil
}

// GetLibraryByID получает библиотеку по ID
func (uc *libraryUseCase) GetLibraryByID(ctx context.Context, id uuid.UUID) (*domain.Library, error) {
	return uc.libraryStorage.GetLibraryByID(ctx, id)
}

// GetLibraryByName ищет библиотеку по имени без учёта регистра
func (uc *libraryUseCase) GetLibraryByName(ctx context.Context, name string) (*domain.Library, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: library name is required", domain.ErrInvalidArgument)
	}
	return uc.libraryStorage.GetLibraryByName(ctx, name)
}

// ListLibraries возвращает библиотеки: для админа — все, иначе только публичные
func (uc *libraryUseCase) ListLibraries(ctx context.Context, isAdmin bool) ([]domain.Library, error) {
	return uc.libraryStorage.ListLibraries(ctx, isAdmin)
}

// DeleteLibrary каскадно удаляет библиотеку в две фазы:
// сперва освобождаются объекты во внешнем хранилище, и только после
// подтверждения удаляются записи файлов и сама библиотека.
// При сбое освобождения бд остается нетронутой, каскад можно повторить —
// задача на повтор публикуется в очередь зачистки.
func (uc *libraryUseCase) DeleteLibrary(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.libraryStorage.GetLibraryByID(ctx, id); err != nil {
		return fmt.Errorf("usecase: поиск библиотеки: %w", err)
	}

	assetIDs, err := uc.fileStorage.ListAssetIDsByLibrary(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: перечисление объектов библиотеки: %w", err)
	}

	if len(assetIDs) > 0 {
		if err := uc.assetStorage.DeleteAssets(ctx, assetIDs); err != nil {
			uc.enqueueCleanupRetry(ctx, id)
			return fmt.Errorf("%w: bulk release for library %s failed: %v", domain.ErrUpstream, id, err)
		}
	}

	if err := uc.fileStorage.DeleteFilesByLibrary(ctx, id); err != nil {
		uc.enqueueCleanupRetry(ctx, id)
		return fmt.Errorf("usecase: удаление записей файлов: %w", err)
	}

	if err := uc.libraryStorage.DeleteLibrary(ctx, id); err != nil {
		// Библиотека могла исчезнуть в параллельном повторе — это не сбой каскада
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("usecase: удаление библиотеки: %w", err)
	}

	uc.logger.Info("library cascade delete completed", "library_id", id, "released_assets", len(assetIDs))
	return nil
}

// enqueueCleanupRetry публикует задачу на повторную зачистку (best effort)
func (uc *libraryUseCase) enqueueCleanupRetry(ctx context.Context, id uuid.UUID) {
	if uc.cleanupPublisher == nil {
		return
	}
	payload := payloads.LibraryCleanupPayload{LibraryID: id, Attempt: 1}
	if err := uc.cleanupPublisher.PublishLibraryCleanup(ctx, payload); err != nil {
		uc.logger.Error("failed to enqueue cleanup retry", "library_id", id, "error", err)
	}
}
