package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/google/uuid"
)

// UploadFileInput — данные multipart-загрузки файла.
type UploadFileInput struct {
	LibraryID    uuid.UUID
	UserID       uuid.UUID
	OriginalName string
	Description  string
	Mimetype     string
	Size         int64
	Content      io.Reader
}

// FileUseCase определяет интерфейс бизнес-логики работы с файлами:
// загрузка, выдача с рейтингом, реакции и просмотры.
type FileUseCase interface {
	// UploadFile проверяет тип файла и существование библиотеки, заливает объект
	// в файловое хранилище и сохраняет запись в бд.
	UploadFile(ctx context.Context, input UploadFileInput) (*domain.File, error)

	// GetFile возвращает файл с автором и списками likes/dislikes/views.
	GetFile(ctx context.Context, id uuid.UUID) (*domain.File, error)

	// ListFilesByLibrary возвращает файлы библиотеки (по имени библиотеки)
	// в порядке, заданном значением sort из публичного API.
	ListFilesByLibrary(ctx context.Context, libraryName, sort string) ([]domain.File, error)

	// ToggleReaction переключает лайк/дизлайк пользователя и возвращает обновленный файл.
	ToggleReaction(ctx context.Context, fileID, userID uuid.UUID, action string) (*domain.File, error)

	// RecordView идемпотентно фиксирует просмотр файла пользователем.
	RecordView(ctx context.Context, fileID, userID uuid.UUID) error

	// DeleteFile освобождает объект в хранилище и удаляет запись файла.
	DeleteFile(ctx context.Context, id uuid.UUID) error
}

// LibraryUseCase определяет интерфейс бизнес-логики работы с библиотеками.
type LibraryUseCase interface {
	CreateLibrary(ctx context.Context, library *domain.Library) (*domain.Library, error)
	GetLibraryByID(ctx context.Context, id uuid.UUID) (*domain.Library, error)
	GetLibraryByName(ctx context.Context, name string) (*domain.Library, error)
	ListLibraries(ctx context.Context, isAdmin bool) ([]domain.Library, error)

	// DeleteLibrary каскадно удаляет библиотеку: сперва освобождает объекты
	// во внешнем хранилище, затем удаляет записи файлов и саму библиотеку.
	// При сбое освобождения бд не трогается, задача уходит в очередь на повтор.
	DeleteLibrary(ctx context.Context, id uuid.UUID) error
}

// UserUseCase определяет интерфейс входа/регистрации пользователей.
type UserUseCase interface {
	// LoginOrRegister: существующее имя с верным паролем — вход;
	// с неверным — ErrUnauthorized; новое имя — регистрация.
	// Второй результат — true, если пользователь был создан.
	LoginOrRegister(ctx context.Context, name, password string) (*domain.User, bool, error)
}

// CommentUseCase определяет интерфейс работы с комментариями.
type CommentUseCase interface {
	AddComment(ctx context.Context, fileID, userID uuid.UUID, text string) (*domain.Comment, error)
	ListComments(ctx context.Context, fileID uuid.UUID) ([]domain.Comment, error)
}
