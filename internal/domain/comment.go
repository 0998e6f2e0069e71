package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment представляет комментарий пользователя к файлу,
// соответствует таблице comments в бд.
type Comment struct {
	ID        uuid.UUID `json:"_id" gorm:"primaryKey;type:uuid"`
	FileID    uuid.UUID `json:"file" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"-" gorm:"type:uuid;not null"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`

	// Заполняется при чтении из бд (имя автора для отображения)
	User *UserRef `json:"user,omitempty" gorm:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
