package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/GoArmGo/MediaLibrary/internal/core/ports"
	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/GoArmGo/MediaLibrary/internal/messaging/payloads"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockFileStorage struct{ mock.Mock }

func (m *mockFileStorage) SaveFile(ctx context.Context, file *domain.File) error {
	return m.Called(ctx, file).Error(0)
}

func (m *mockFileStorage) GetFileByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*domain.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileStorage) ListFilesByLibrary(ctx context.Context, libraryID uuid.UUID, sort domain.Sort) ([]domain.File, error) {
	args := m.Called(ctx, libraryID, sort)
	if f, ok := args.Get(0).([]domain.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileStorage) DeleteFile(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFileStorage) ListAssetIDsByLibrary(ctx context.Context, libraryID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, libraryID)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileStorage) DeleteFilesByLibrary(ctx context.Context, libraryID uuid.UUID) error {
	return m.Called(ctx, libraryID).Error(0)
}

func (m *mockFileStorage) ToggleReaction(ctx context.Context, fileID, userID uuid.UUID, kind domain.ReactionKind) error {
	return m.Called(ctx, fileID, userID, kind).Error(0)
}

func (m *mockFileStorage) RecordView(ctx context.Context, fileID, userID uuid.UUID) error {
	return m.Called(ctx, fileID, userID).Error(0)
}

var _ ports.FileStorage = (*mockFileStorage)(nil)

type mockLibraryStorage struct{ mock.Mock }

func (m *mockLibraryStorage) SaveLibrary(ctx context.Context, library *domain.Library) error {
	return m.Called(ctx, library).Error(0)
}

func (m *mockLibraryStorage) GetLibraryByID(ctx context.Context, id uuid.UUID) (*domain.Library, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*domain.Library); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLibraryStorage) GetLibraryByName(ctx context.Context, name string) (*domain.Library, error) {
	args := m.Called(ctx, name)
	if l, ok := args.Get(0).(*domain.Library); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLibraryStorage) ListLibraries(ctx context.Context, includePrivate bool) ([]domain.Library, error) {
	args := m.Called(ctx, includePrivate)
	if l, ok := args.Get(0).([]domain.Library); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLibraryStorage) DeleteLibrary(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var _ ports.LibraryStorage = (*mockLibraryStorage)(nil)

type mockUserStorage struct{ mock.Mock }

func (m *mockUserStorage) SaveUser(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStorage) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ ports.UserStorage = (*mockUserStorage)(nil)

type mockCommentStorage struct{ mock.Mock }

func (m *mockCommentStorage) SaveComment(ctx context.Context, comment *domain.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentStorage) ListCommentsByFile(ctx context.Context, fileID uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, fileID)
	if c, ok := args.Get(0).([]domain.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ ports.CommentStorage = (*mockCommentStorage)(nil)

type mockAssetStorage struct{ mock.Mock }

func (m *mockAssetStorage) UploadAsset(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, reader, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockAssetStorage) DeleteAsset(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockAssetStorage) DeleteAssets(ctx context.Context, keys []string) error {
	return m.Called(ctx, keys).Error(0)
}

var _ ports.AssetStorage = (*mockAssetStorage)(nil)

type mockCleanupPublisher struct{ mock.Mock }

func (m *mockCleanupPublisher) PublishLibraryCleanup(ctx context.Context, payload payloads.LibraryCleanupPayload) error {
	return m.Called(ctx, payload).Error(0)
}

var _ ports.LibraryCleanupPublisher = (*mockCleanupPublisher)(nil)
