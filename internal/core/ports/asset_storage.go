package ports

import (
	"context"
	"io"
)

// AssetStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
// порт для хранения бинарных данных (самих изображений)
type AssetStorage interface {
	// UploadAsset загружает объект в хранилище и возвращает его публичный URL.
	// `key` — уникальное имя объекта в хранилище.
	UploadAsset(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteAsset удаляет объект из хранилища по его ключу.
	DeleteAsset(ctx context.Context, key string) error

	// DeleteAssets удаляет набор объектов одним запросом (bulk destroy).
	// Возвращает ошибку, если хотя бы один объект удалить не удалось.
	DeleteAssets(ctx context.Context, keys []string) error
}
