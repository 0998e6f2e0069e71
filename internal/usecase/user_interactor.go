package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/MediaLibrary/internal/core/ports"
	"github.com/GoArmGo/MediaLibrary/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(userStorage ports.UserStorage, logger *slog.Logger) UserUseCase {
	return &userUseCase{userStorage: userStorage, logger: logger}
}

// LoginOrRegister обрабатывает вход и регистрацию одной операцией:
// существующее имя с верным паролем — вход, с неверным — ErrUnauthorized,
// новое имя — регистрация. Имя сравнивается без учёта регистра.
func (uc *userUseCase) LoginOrRegister(ctx context.Context, name, password string) (*domain.User, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, false, fmt.Errorf("%w: name and password are required", domain.ErrInvalidArgument)
	}

	user, err := uc.userStorage.GetUserByName(ctx, name)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, false, fmt.Errorf("%w: password does not match", domain.ErrUnauthorized)
		}
		uc.logger.Info("user logged in", "user_id", user.ID, "name", user.Name)
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("usecase: поиск пользователя: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("usecase: хэширование пароля: %w", err)
	}

	newUser := &domain.User{Name: name, PasswordHash: string(hash)}
	if err := uc.userStorage.SaveUser(ctx, newUser); err != nil {
		return nil, false, fmt.Errorf("usecase: регистрация пользователя: %w", err)
	}

	uc.logger.Info("user registered", "user_id", newUser.ID, "name", newUser.Name)
	return newUser, true, nil
}
