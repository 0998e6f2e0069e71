package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReactionKind — вид реакции пользователя на файл.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Valid проверяет, что вид реакции известен системе.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// ActionEvent — одно действие пользователя (лайк/дизлайк/просмотр) с меткой времени.
// Не имеет собственного ID: идентичность задаётся парой (файл, пользователь).
type ActionEvent struct {
	UserID uuid.UUID `json:"user" db:"user_id"`
	Date   time.Time `json:"date" db:"created_at"`
}

// UserRef — краткая ссылка на пользователя для отдачи в API.
type UserRef struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// File представляет модель загруженного файла в системе,
// соответствует таблице files в бд.
// JSON-теги фиксируют формат публичного API.
type File struct {
	ID           uuid.UUID `json:"_id" db:"id"`
	LibraryID    uuid.UUID `json:"library" db:"library_id"`
	UploadedByID uuid.UUID `json:"-" db:"uploaded_by"`
	Filename     string    `json:"filename" db:"filename"`
	OriginalName string    `json:"originalName" db:"original_name"`
	Description  string    `json:"description" db:"description"`
	Mimetype     string    `json:"mimetype" db:"mimetype"`
	Size         int64     `json:"size" db:"size"`
	URL          string    `json:"url" db:"url"`
	AssetID      string    `json:"-" db:"asset_id"`
	UploadedAt   time.Time `json:"uploadedAt" db:"uploaded_at"`

	// Заполняются отдельно при чтении, в бд лежат в своих таблицах
	UploadedBy *UserRef      `json:"uploadedBy,omitempty" db:"-"`
	Likes      []ActionEvent `json:"likes" db:"-"`
	Dislikes   []ActionEvent `json:"dislikes" db:"-"`
	Views      []ActionEvent `json:"views" db:"-"`
}

func (File) TableName() string {
	return "files"
}
