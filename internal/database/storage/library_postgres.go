package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LibraryStorage — GORM-реализация хранилища библиотек
type LibraryStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewLibraryStorage(db *gorm.DB, logger *slog.Logger) *LibraryStorage {
	return &LibraryStorage{db: db, logger: logger}
}

// SaveLibrary создаёт библиотеку. Дубликат имени (без учёта регистра) — ErrConflict.
// Финальную гарантию уникальности даёт индекс по LOWER(name), предварительная
// проверка здесь нужна для внятного кода ошибки.
func (s *LibraryStorage) SaveLibrary(ctx context.Context, library *domain.Library) error {
	start := time.Now()

	if library.ID == uuid.Nil {
		library.ID = uuid.New()
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.Library{}).
		Where("LOWER(name) = LOWER(?)", library.Name).
		Count(&count).Error; err != nil {
		s.logger.Error("failed to check library name", "name", library.Name, "error", err)
		return fmt.Errorf("ошибка при проверке имени библиотеки: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: library name %q", domain.ErrConflict, library.Name)
	}

	if err := s.db.WithContext(ctx).Create(library).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: library name %q", domain.ErrConflict, library.Name)
		}
		s.logger.Error("failed to create library", "name", library.Name, "error", err)
		return fmt.Errorf("ошибка при создании библиотеки: %w", err)
	}

	s.logger.Info("library created",
		"library_id", library.ID,
		"name", library.Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetLibraryByID получает библиотеку по ID
func (s *LibraryStorage) GetLibraryByID(ctx context.Context, id uuid.UUID) (*domain.Library, error) {
	var library domain.Library
	err := s.db.WithContext(ctx).First(&library, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: library %s", domain.ErrNotFound, id)
		}
		s.logger.Error("failed to get library by id", "library_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении библиотеки по ID: %w", err)
	}
	return &library, nil
}

// GetLibraryByName ищет библиотеку по имени без учёта регистра (точное совпадение)
func (s *LibraryStorage) GetLibraryByName(ctx context.Context, name string) (*domain.Library, error) {
	var library domain.Library
	err := s.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&library).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: library %q", domain.ErrNotFound, name)
		}
		s.logger.Error("failed to get library by name", "name", name, "error", err)
		return nil, fmt.Errorf("ошибка при получении библиотеки по имени: %w", err)
	}
	return &library, nil
}

// ListLibraries возвращает библиотеки по имени по возрастанию;
// includePrivate=false скрывает приватные (выдача для не-админов)
func (s *LibraryStorage) ListLibraries(ctx context.Context, includePrivate bool) ([]domain.Library, error) {
	var libraries []domain.Library

	q := s.db.WithContext(ctx).Order("name ASC")
	if !includePrivate {
		q = q.Where("is_public = ?", true)
	}

	if err := q.Find(&libraries).Error; err != nil {
		s.logger.Error("failed to list libraries", "error", err)
		return nil, fmt.Errorf("ошибка при получении списка библиотек: %w", err)
	}
	return libraries, nil
}

// DeleteLibrary удаляет запись библиотеки
func (s *LibraryStorage) DeleteLibrary(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&domain.Library{}, "id = ?", id)
	if res.Error != nil {
		s.logger.Error("failed to delete library", "library_id", id, "error", res.Error)
		return fmt.Errorf("ошибка при удалении библиотеки: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: library %s", domain.ErrNotFound, id)
	}

	s.logger.Info("library deleted", "library_id", id)
	return nil
}
