package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentStorage — GORM-реализация хранилища комментариев
type CommentStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCommentStorage(db *gorm.DB, logger *slog.Logger) *CommentStorage {
	return &CommentStorage{db: db, logger: logger}
}

// commentRow — строка выборки комментария вместе с именем автора
type commentRow struct {
	ID        uuid.UUID
	FileID    uuid.UUID
	UserID    uuid.UUID
	Text      string
	CreatedAt time.Time
	UserName  string
}

// SaveComment создаёт комментарий к файлу
func (s *CommentStorage) SaveComment(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		s.logger.Error("failed to create comment", "file_id", comment.FileID, "error", err)
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	s.logger.Info("comment created", "comment_id", comment.ID, "file_id", comment.FileID)
	return nil
}

// ListCommentsByFile возвращает комментарии файла, новые первыми, с именами авторов
func (s *CommentStorage) ListCommentsByFile(ctx context.Context, fileID uuid.UUID) ([]domain.Comment, error) {
	var rows []commentRow

	err := s.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.file_id, comments.user_id, comments.text, comments.created_at, users.name AS user_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.file_id = ?", fileID).
		Order("comments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		s.logger.Error("failed to list comments", "file_id", fileID, "error", err)
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	comments := make([]domain.Comment, len(rows))
	for i, r := range rows {
		comments[i] = domain.Comment{
			ID:        r.ID,
			FileID:    r.FileID,
			UserID:    r.UserID,
			Text:      r.Text,
			CreatedAt: r.CreatedAt,
			User:      &domain.UserRef{ID: r.UserID, Name: r.UserName},
		}
	}
	return comments, nil
}
