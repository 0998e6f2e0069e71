// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// Имя уникально без учёта регистра; пароль хранится только bcrypt-хэшем.
type User struct {
	ID           uuid.UUID `json:"_id" gorm:"primaryKey;type:uuid"`
	Name         string    `json:"name" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	IsAdmin      bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// Ref возвращает краткую ссылку на пользователя для отдачи в API.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name}
}
