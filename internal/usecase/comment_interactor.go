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

// commentUseCase implements CommentUseCase
type commentUseCase struct {
	commentStorage ports.CommentStorage
	fileStorage    ports.FileStorage
	userStorage    ports.UserStorage
	logger         *slog.Logger
}

// NewCommentUseCase создает новый экземпляр CommentUseCase
func NewCommentUseCase(
	commentStorage ports.CommentStorage,
	fileStorage ports.FileStorage,
	userStorage ports.UserStorage,
	logger *slog.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentStorage: commentStorage,
		fileStorage:    fileStorage,
		userStorage:    userStorage,
		logger:         logger,
	}
}

// AddComment создает комментарий к файлу. Текст обязателен после обрезки пробелов.
func (uc *commentUseCase) AddComment(ctx context.Context, fileID, userID uuid.UUID, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrInvalidArgument)
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}

	if _, err := uc.fileStorage.GetFileByID(ctx, fileID); err != nil {
		return nil, fmt.Errorf("usecase: проверка файла: %w", err)
	}
	user, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: проверка пользователя: %w", err)
	}

	comment := &domain.Comment{FileID: fileID, UserID: userID, Text: text}
	if err := uc.commentStorage.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("usecase: создание комментария: %w", err)
	}

	comment.User = user.Ref()
	return comment, nil
}

// ListComments возвращает комментарии файла, новые первыми
func (uc *commentUseCase) ListComments(ctx context.Context, fileID uuid.UUID) ([]domain.Comment, error) {
	return uc.commentStorage.ListCommentsByFile(ctx, fileID)
}
