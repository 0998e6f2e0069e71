package storage

import (
	"context"
	"testing"
	"time"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentStorage_ListNewestFirstWithAuthors(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStorage(db, testLogger())
	comments := NewCommentStorage(db, testLogger())
	ctx := context.Background()

	author := &domain.User{Name: "Alice", PasswordHash: "hash"}
	require.NoError(t, users.SaveUser(ctx, author))

	fileID := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	first := &domain.Comment{FileID: fileID, UserID: author.ID, Text: "first", CreatedAt: base}
	second := &domain.Comment{FileID: fileID, UserID: author.ID, Text: "second", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, comments.SaveComment(ctx, first))
	require.NoError(t, comments.SaveComment(ctx, second))

	got, err := comments.ListCommentsByFile(ctx, fileID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "second", got[0].Text)
	assert.Equal(t, "first", got[1].Text)
	require.NotNil(t, got[0].User)
	assert.Equal(t, "Alice", got[0].User.Name)
}

func TestCommentStorage_ListEmpty(t *testing.T) {
	db := newTestDB(t)
	comments := NewCommentStorage(db, testLogger())

	got, err := comments.ListCommentsByFile(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}
