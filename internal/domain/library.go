package domain

import (
	"time"

	"github.com/google/uuid"
)

// Library представляет именованную коллекцию файлов,
// соответствует таблице libraries в бд.
// Имя уникально без учёта регистра (уникальный индекс по LOWER(name)).
type Library struct {
	ID          uuid.UUID  `json:"_id" gorm:"primaryKey;type:uuid"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	IsPublic    bool       `json:"isPublic" gorm:"not null;default:true"`
	OwnerID     *uuid.UUID `json:"owner,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (Library) TableName() string {
	return "libraries"
}
