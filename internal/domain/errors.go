package domain

import "errors"

// Классы ошибок сервиса. Нижние слои заворачивают их через fmt.Errorf("%w"),
// HTTP-слой разворачивает через errors.Is и отдаёт соответствующий статус.
var (
	// ErrNotFound — запрошенная сущность (файл, библиотека, пользователь) отсутствует.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument — отсутствует обязательное поле или значение не распознано.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict — нарушение уникальности (дубликат имени).
	ErrConflict = errors.New("already exists")

	// ErrUnauthorized — неверные учётные данные.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream — внешний провайдер хранения не выполнил операцию.
	ErrUpstream = errors.New("upstream storage failure")
)
