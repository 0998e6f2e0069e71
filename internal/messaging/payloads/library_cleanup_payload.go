package payloads

import "github.com/google/uuid"

// LibraryCleanupPayload — задача на повторную зачистку библиотеки,
// у которой не удалось освободить объекты во внешнем хранилище.
type LibraryCleanupPayload struct {
	LibraryID uuid.UUID `json:"library_id"`
	Attempt   int       `json:"attempt"`
}
