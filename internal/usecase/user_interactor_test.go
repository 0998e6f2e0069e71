package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginOrRegister_NewUser(t *testing.T) {
	us := new(mockUserStorage)
	uc := NewUserUseCase(us, testLogger())

	us.On("GetUserByName", mock.Anything, "alice").Return(nil, domain.ErrNotFound)
	us.On("SaveUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		// хэш должен проверяться исходным паролем
		return u.Name == "alice" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")) == nil
	})).Return(nil)

	user, created, err := uc.LoginOrRegister(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", user.Name)
	us.AssertExpectations(t)
}

func TestLoginOrRegister_ExistingUser(t *testing.T) {
	us := new(mockUserStorage)
	uc := NewUserUseCase(us, testLogger())

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	existing := &domain.User{ID: uuid.New(), Name: "bob", PasswordHash: string(hash)}

	us.On("GetUserByName", mock.Anything, "bob").Return(existing, nil)

	user, created, err := uc.LoginOrRegister(context.Background(), "bob", "secret")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, user.ID)
	us.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestLoginOrRegister_WrongPassword(t *testing.T) {
	us := new(mockUserStorage)
	uc := NewUserUseCase(us, testLogger())

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	us.On("GetUserByName", mock.Anything, "bob").
		Return(&domain.User{Name: "bob", PasswordHash: string(hash)}, nil)

	_, _, err = uc.LoginOrRegister(context.Background(), "bob", "wrong")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLoginOrRegister_Validation(t *testing.T) {
	uc := NewUserUseCase(new(mockUserStorage), testLogger())

	_, _, err := uc.LoginOrRegister(context.Background(), "  ", "secret")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, _, err = uc.LoginOrRegister(context.Background(), "alice", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}
