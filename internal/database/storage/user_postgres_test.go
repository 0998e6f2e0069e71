package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStorage_SaveAndGet(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStorage(db, testLogger())
	ctx := context.Background()

	user := &domain.User{Name: "Alice", PasswordHash: "hash"}
	require.NoError(t, store.SaveUser(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	got, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestUserStorage_GetByName_CaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStorage(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, &domain.User{Name: "Alice", PasswordHash: "hash"}))

	got, err := store.GetUserByName(ctx, "aLiCe")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestUserStorage_NotFound(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStorage(db, testLogger())
	ctx := context.Background()

	_, err := store.GetUserByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = store.GetUserByName(ctx, "nobody")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
