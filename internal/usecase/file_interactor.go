package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/MediaLibrary/internal/core/ports"
	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/google/uuid"
)

// Разрешенные MIME-типы загружаемых файлов
var allowedMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

// fileUseCase implements FileUseCase
type fileUseCase struct {
	fileStorage    ports.FileStorage
	libraryStorage ports.LibraryStorage
	userStorage    ports.UserStorage
	assetStorage   ports.AssetStorage
	logger         *slog.Logger
}

// NewFileUseCase создает новый экземпляр FileUseCase
func NewFileUseCase(
	fileStorage ports.FileStorage,
	libraryStorage ports.LibraryStorage,
	userStorage ports.UserStorage,
	assetStorage ports.AssetStorage,
	logger *slog.Logger,
) FileUseCase {
	return &fileUseCase{
		fileStorage:    fileStorage,
		libraryStorage: libraryStorage,
		userStorage:    userStorage,
		assetStorage:   assetStorage,
		logger:         logger,
	}
}

// UploadFile загружает файл: валидация типа, проверка библиотеки и пользователя,
// заливка объекта в хранилище и только после подтверждения — запись в бд.
func (uc *fileUseCase) UploadFile(ctx context.Context, input UploadFileInput) (*domain.File, error) {
	if input.LibraryID == uuid.Nil {
		return nil, fmt.Errorf("%w: library id is required", domain.ErrInvalidArgument)
	}
	if input.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}
	if input.Content == nil {
		return nil, fmt.Errorf("%w: no file uploaded", domain.ErrInvalidArgument)
	}
	if _, ok := allowedMimeTypes[input.Mimetype]; !ok {
		return nil, fmt.Errorf("%w: invalid file type %q, only JPG, JPEG and PNG are allowed", domain.ErrInvalidArgument, input.Mimetype)
	}

	library, err := uc.libraryStorage.GetLibraryByID(ctx, input.LibraryID)
	if err != nil {
		return nil, fmt.Errorf("usecase: проверка библиотеки: %w", err)
	}
	user, err := uc.userStorage.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("usecase: проверка пользователя: %w", err)
	}

	fileID := uuid.New()
	assetKey := fmt.Sprintf("libraries/%s/%s", slugify(library.Name), fileID)

	url, err := uc.assetStorage.UploadAsset(ctx, assetKey, input.Content, input.Mimetype)
	if err != nil {
		return nil, fmt.Errorf("%w: upload of %s failed: %v", domain.ErrUpstream, assetKey, err)
	}

	file := &domain.File{
		ID:           fileID,
		LibraryID:    library.ID,
		UploadedByID: user.ID,
		Filename:     input.OriginalName,
		OriginalName: input.OriginalName,
		Description:  strings.TrimSpace(input.Description),
		Mimetype:     input.Mimetype,
		Size:         input.Size,
		URL:          url,
		AssetID:      assetKey,
	}

	if err := uc.fileStorage.SaveFile(ctx, file); err != nil {
		// Объект уже в хранилище, запись не создалась — подчищаем, чтобы не копить сирот
		if delErr := uc.assetStorage.DeleteAsset(ctx, assetKey); delErr != nil {
			uc.logger.Error("failed to roll back uploaded object", "key", assetKey, "error", delErr)
		}
		return nil, fmt.Errorf("usecase: сохранение файла в бд: %w", err)
	}

	return uc.fileStorage.GetFileByID(ctx, file.ID)
}

// GetFile возвращает файл с автором и списками событий
func (uc *fileUseCase) GetFile(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	return uc.fileStorage.GetFileByID(ctx, id)
}

// ListFilesByLibrary возвращает файлы библиотеки в порядке, заданном sort.
// Чтение рейтинга ничего не мутирует; пустая библиотека — пустой список.
func (uc *fileUseCase) ListFilesByLibrary(ctx context.Context, libraryName, sort string) ([]domain.File, error) {
	if strings.TrimSpace(libraryName) == "" {
		return nil, fmt.Errorf("%w: library name is required", domain.ErrInvalidArgument)
	}

	order, err := domain.ParseSort(sort)
	if err != nil {
		return nil, err
	}

	library, err := uc.libraryStorage.GetLibraryByName(ctx, libraryName)
	if err != nil {
		return nil, fmt.Errorf("usecase: поиск библиотеки по имени: %w", err)
	}

	return uc.fileStorage.ListFilesByLibrary(ctx, library.ID, order)
}

// ToggleReaction переключает лайк/дизлайк и возвращает обновленный файл.
// Само переключение — одна атомарная операция в хранилище.
func (uc *fileUseCase) ToggleReaction(ctx context.Context, fileID, userID uuid.UUID, action string) (*domain.File, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}

	kind := domain.ReactionKind(action)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: action must be %q or %q", domain.ErrInvalidArgument, domain.ReactionLike, domain.ReactionDislike)
	}

	if err := uc.fileStorage.ToggleReaction(ctx, fileID, userID, kind); err != nil {
		return nil, fmt.Errorf("usecase: переключение реакции: %w", err)
	}

	return uc.fileStorage.GetFileByID(ctx, fileID)
}

// RecordView идемпотентно фиксирует просмотр: повтор — no-op, не ошибка
func (uc *fileUseCase) RecordView(ctx context.Context, fileID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}
	return uc.fileStorage.RecordView(ctx, fileID, userID)
}

// DeleteFile освобождает объект в хранилище, затем удаляет запись из бд.
// Порядок важен: запись не удаляется, пока объект не освобожден.
func (uc *fileUseCase) DeleteFile(ctx context.Context, id uuid.UUID) error {
	file, err := uc.fileStorage.GetFileByID(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: поиск файла: %w", err)
	}

	if err := uc.assetStorage.DeleteAsset(ctx, file.AssetID); err != nil {
		return fmt.Errorf("%w: release of %s failed: %v", domain.ErrUpstream, file.AssetID, err)
	}

	if err := uc.fileStorage.DeleteFile(ctx, id); err != nil {
		return fmt.Errorf("usecase: удаление записи файла: %w", err)
	}
	return nil
}

// slugify приводит имя библиотеки к виду, пригодному для ключа объекта
func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
