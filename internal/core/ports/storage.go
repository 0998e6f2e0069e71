package ports

import (
	"context"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/google/uuid"
)

// FileStorage определяет методы для взаимодействия с хранилищем файлов в бд
type FileStorage interface {
	SaveFile(ctx context.Context, file *domain.File) error

	// GetFileByID возвращает файл вместе с автором и списками likes/dislikes/views.
	GetFileByID(ctx context.Context, id uuid.UUID) (*domain.File, error)

	// ListFilesByLibrary возвращает файлы библиотеки в заданном порядке,
	// каждый — с автором и списками событий. Чтение не меняет состояние.
	ListFilesByLibrary(ctx context.Context, libraryID uuid.UUID, sort domain.Sort) ([]domain.File, error)

	DeleteFile(ctx context.Context, id uuid.UUID) error

	// ListAssetIDsByLibrary возвращает ключи объектов хранилища для всех файлов библиотеки.
	ListAssetIDsByLibrary(ctx context.Context, libraryID uuid.UUID) ([]string, error)

	// DeleteFilesByLibrary удаляет все записи файлов библиотеки (события каскадом).
	DeleteFilesByLibrary(ctx context.Context, libraryID uuid.UUID) error

	// ToggleReaction атомарно переключает лайк/дизлайк пользователя:
	// повторная реакция того же вида снимается, противоположная замещается.
	ToggleReaction(ctx context.Context, fileID, userID uuid.UUID, kind domain.ReactionKind) error

	// RecordView фиксирует просмотр не более одного раза на пользователя (идемпотентно).
	RecordView(ctx context.Context, fileID, userID uuid.UUID) error
}

// LibraryStorage определяет методы для взаимодействия с хранилищем библиотек
type LibraryStorage interface {
	SaveLibrary(ctx context.Context, library *domain.Library) error
	GetLibraryByID(ctx context.Context, id uuid.UUID) (*domain.Library, error)

	// GetLibraryByName ищет библиотеку по имени без учёта регистра.
	GetLibraryByName(ctx context.Context, name string) (*domain.Library, error)

	// ListLibraries возвращает библиотеки по имени по возрастанию;
	// includePrivate=false скрывает приватные.
	ListLibraries(ctx context.Context, includePrivate bool) ([]domain.Library, error)

	DeleteLibrary(ctx context.Context, id uuid.UUID) error
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	SaveUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetUserByName ищет пользователя по имени без учёта регистра.
	GetUserByName(ctx context.Context, name string) (*domain.User, error)
}

// CommentStorage определяет методы для взаимодействия с хранилищем комментариев
type CommentStorage interface {
	SaveComment(ctx context.Context, comment *domain.Comment) error

	// ListCommentsByFile возвращает комментарии файла, новые первыми, с именами авторов.
	ListCommentsByFile(ctx context.Context, fileID uuid.UUID) ([]domain.Comment, error)
}
